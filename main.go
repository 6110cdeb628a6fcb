package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	"blog_platform/bootstrap"
	"blog_platform/config"
	"blog_platform/database"
	_ "blog_platform/docs"
	"blog_platform/internal/routes"
	"blog_platform/internal/token"
)

// @title           Blog Platform API
// @version         1.0
// @description     Blogging platform backend: users, posts, follows, feeds, notifications and admin moderation.
// @BasePath        /
// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer database.Disconnect(client)

	if err := bootstrap.EnsureIndexes(client.Database(cfg.DBName)); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	app.Get("/docs/*", swagger.HandlerDefault)

	routes.Register(app, routes.Deps{
		Client: client,
		DBName: cfg.DBName,
		Tokens: token.NewService(cfg.JWTSecret, cfg.TokenTTL),
	})

	log.Printf("listening at http://localhost:%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
