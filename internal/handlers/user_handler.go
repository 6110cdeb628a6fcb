package handlers

import (
	"context"
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"blog_platform/dto"
	"blog_platform/internal/middleware"
	"blog_platform/internal/repository"
	"blog_platform/internal/token"
	"blog_platform/model"
)

// feedLimit caps how many posts the feed returns per request.
const feedLimit = 10

// UserDirectory is the slice of the user repository the user endpoints need.
type UserDirectory interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Follow(ctx context.Context, id, target bson.ObjectID) error
	PushNotification(ctx context.Context, id bson.ObjectID, n model.Notification) error
	UnreadNotifications(ctx context.Context, id bson.ObjectID) ([]model.Notification, error)
	MarkNotificationsSeen(ctx context.Context, id bson.ObjectID) error
	SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
}

// FeedSource is what the feed endpoint needs from the post store.
type FeedSource interface {
	Feed(ctx context.Context, authors []bson.ObjectID, limit int64) ([]model.Post, error)
}

type UserHandler struct {
	Users    UserDirectory
	Posts    FeedSource
	Tokens   *token.Service
	Validate *validator.Validate
}

// Register godoc
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        data  body      dto.RegisterDTO  true  "Credentials"
// @Success      201   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, "register", err)
	}

	user := &model.User{
		Username:      body.Username,
		Email:         body.Email,
		Password:      string(hash),
		Role:          model.RoleRegular,
		Followers:     []bson.ObjectID{},
		Notifications: []model.Notification{},
	}
	if err := h.Users.Create(c.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User already exists"})
		}
		return internalError(c, "register", err)
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return internalError(c, "register", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "User registered successfully", "token": tok})
}

// Login godoc
// @Summary      Log in and receive a token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        data  body      dto.LoginDTO  true  "Credentials"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	user, err := h.Users.FindByEmail(c.Context(), body.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	if err != nil {
		return internalError(c, "login", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}

	tok, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return internalError(c, "login", err)
	}

	return c.JSON(fiber.Map{"token": tok})
}

// Protected is an admin-only probe route.
func (h *UserHandler) Protected(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Protected route - Only Admins allowed"})
}

// Follow godoc
// @Summary      Follow another user
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        userId  path      string  true  "User ID (hex)"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /user/follow/{userId} [post]
func (h *UserHandler) Follow(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	targetID, err := bson.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	target, err := h.Users.FindByID(c.Context(), targetID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "follow", err)
	}

	if target.ID.Hex() == uid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "You cannot follow yourself"})
	}

	myID, _ := bson.ObjectIDFromHex(uid)
	me, err := h.Users.FindByID(c.Context(), myID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "follow", err)
	}

	if slices.Contains(me.Followers, target.ID) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "You are already following this blogger"})
	}

	if err := h.Users.Follow(c.Context(), me.ID, target.ID); err != nil {
		return internalError(c, "follow", err)
	}
	if err := h.Users.PushNotification(c.Context(), target.ID, model.Notification{
		Type:   model.NotificationFollow,
		UserID: me.ID,
	}); err != nil {
		return internalError(c, "follow", err)
	}

	me.Followers = append(me.Followers, target.ID)
	return c.JSON(fiber.Map{"message": "You are now following the blogger", "user": me})
}

// Feed godoc
// @Summary      Posts from followed authors, newest first
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   model.Post
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /user/feed [get]
func (h *UserHandler) Feed(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	myID, _ := bson.ObjectIDFromHex(uid)

	me, err := h.Users.FindByID(c.Context(), myID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "feed", err)
	}

	posts, err := h.Posts.Feed(c.Context(), me.Followers, feedLimit)
	if err != nil {
		return internalError(c, "feed", err)
	}
	return c.JSON(posts)
}

// Notifications godoc
// @Summary      Unread notifications for the current user
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}  model.Notification
// @Router       /user/notifications [get]
func (h *UserHandler) Notifications(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	myID, _ := bson.ObjectIDFromHex(uid)

	unread, err := h.Users.UnreadNotifications(c.Context(), myID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "notifications", err)
	}
	return c.JSON(unread)
}

// MarkNotificationsSeen godoc
// @Summary      Mark all notifications as seen
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /user/notifications/mark-seen [put]
func (h *UserHandler) MarkNotificationsSeen(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}
	myID, _ := bson.ObjectIDFromHex(uid)

	err = h.Users.MarkNotificationsSeen(c.Context(), myID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "notifications", err)
	}
	return c.JSON(fiber.Map{"message": "Notifications marked as seen"})
}

// AdminListUsers godoc
// @Summary      List every user
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   model.User
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /user/admin/users [get]
func (h *UserHandler) AdminListUsers(c *fiber.Ctx) error {
	users, err := h.Users.All(c.Context())
	if err != nil {
		return internalError(c, "admin users", err)
	}
	return c.JSON(users)
}

// AdminBlockUser godoc
// @Summary      Block a user
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        userId  path      string  true  "User ID (hex)"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /user/admin/block-user/{userId} [put]
func (h *UserHandler) AdminBlockUser(c *fiber.Ctx) error {
	targetID, err := bson.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	user, err := h.Users.SetBlocked(c.Context(), targetID, true)
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}
	if err != nil {
		return internalError(c, "block user", err)
	}
	return c.JSON(fiber.Map{"message": "User blocked successfully", "user": user})
}
