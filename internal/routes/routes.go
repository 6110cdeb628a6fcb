package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"blog_platform/internal/handlers"
	"blog_platform/internal/middleware"
	"blog_platform/internal/repository"
	"blog_platform/internal/token"
	"blog_platform/model"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Client *mongo.Client
	DBName string
	Tokens *token.Service
}

// Register mounts all HTTP routes in one place, grouped by resource.
func Register(app *fiber.App, d Deps) {
	db := d.Client.Database(d.DBName)
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	validate := validator.New()

	userH := &handlers.UserHandler{Users: users, Posts: posts, Tokens: d.Tokens, Validate: validate}
	postH := &handlers.PostHandler{Posts: posts, Users: users, Validate: validate}

	auth := middleware.RequireAuth(d.Tokens)
	admin := middleware.RequireRole(model.RoleAdmin)

	// ============================================================
	// Users
	// ============================================================
	user := app.Group("/user")

	user.Post("/register", userH.Register)
	user.Post("/login", userH.Login)
	user.Get("/protected", auth, admin, userH.Protected)
	user.Post("/follow/:userId", auth, userH.Follow)
	user.Get("/feed", auth, userH.Feed)
	user.Get("/notifications", auth, userH.Notifications)
	user.Put("/notifications/mark-seen", auth, userH.MarkNotificationsSeen)
	user.Get("/admin/users", auth, admin, userH.AdminListUsers)
	user.Put("/admin/block-user/:userId", auth, admin, userH.AdminBlockUser)

	// ============================================================
	// Posts
	// ============================================================
	post := app.Group("/post")

	post.Post("/", auth, postH.Create)
	post.Get("/", postH.List)

	// literal paths first so /:postId does not shadow them
	post.Get("/search", postH.Search)
	post.Get("/admin/posts", auth, admin, postH.AdminList)
	post.Get("/admin/posts/:postId", auth, admin, postH.AdminGet)
	post.Put("/admin/disable-blog/:postId", auth, admin, postH.Disable)

	post.Get("/:postId", postH.Get)
	post.Put("/:postId", auth, postH.Update)
	post.Delete("/:postId", auth, postH.Delete)
	post.Post("/:postId/rate", auth, postH.Rate)
	post.Post("/:postId/comment", auth, postH.Comment)

	// ============================================================
	// Misc
	// ============================================================

	// Health check
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}
