package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/dto"
	"blog_platform/internal/middleware"
	"blog_platform/internal/repository"
	"blog_platform/model"
)

// PostStore is the slice of the post repository the post endpoints need.
type PostStore interface {
	Create(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	List(ctx context.Context, page, limit int64) ([]model.Post, error)
	Update(ctx context.Context, id bson.ObjectID, title, content string) (*model.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	AddRating(ctx context.Context, postID, userID bson.ObjectID, rating float64) (*model.Post, error)
	AddComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) (*model.Post, error)
	SetDisabled(ctx context.Context, id bson.ObjectID, disabled bool) (*model.Post, error)
	Search(ctx context.Context, opt model.SearchOptions) ([]model.Post, error)
	AdminList(ctx context.Context) ([]model.AdminPost, error)
	AdminFindByID(ctx context.Context, id bson.ObjectID) (*model.AdminPostDetail, error)
}

// UserSource is what the post endpoints need from the user directory:
// author-name resolution for search and notification delivery on comments.
type UserSource interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	PushNotification(ctx context.Context, id bson.ObjectID, n model.Notification) error
}

type PostHandler struct {
	Posts    PostStore
	Users    UserSource
	Validate *validator.Validate
}

// Create godoc
// @Summary      Create a blog post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        data  body      dto.CreatePostDTO  true  "Post payload"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /post [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	var body dto.CreatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	author, _ := bson.ObjectIDFromHex(uid)
	post := &model.Post{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
		Author:   author,
		Ratings:  []model.Rating{},
		Comments: []model.Comment{},
	}
	if err := h.Posts.Create(c.Context(), post); err != nil {
		return internalError(c, "create post", err)
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "Blog post created successfully", "post": post})
}

// List godoc
// @Summary      List posts, paginated, newest first
// @Tags         posts
// @Produce      json
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {array}   model.Post
// @Router       /post [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 10))

	posts, err := h.Posts.List(c.Context(), page, limit)
	if err != nil {
		return internalError(c, "list posts", err)
	}
	return c.JSON(posts)
}

// Get godoc
// @Summary      Get one post
// @Tags         posts
// @Produce      json
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  model.Post
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/{postId} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	post, ok, err := h.loadPost(c)
	if !ok {
		return err
	}
	return c.JSON(post)
}

// Update godoc
// @Summary      Edit a post (owner only, partial)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string             true  "Post ID (hex)"
// @Param        data    body      dto.UpdatePostDTO  true  "Fields to change"
// @Success      200     {object}  map[string]interface{}
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/{postId} [put]
func (h *PostHandler) Update(c *fiber.Ctx) error {
	post, ok, err := h.loadOwnedPost(c)
	if !ok {
		return err
	}

	var body dto.UpdatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}

	updated, err := h.Posts.Update(c.Context(), post.ID, body.Title, body.Content)
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return internalError(c, "update post", err)
	}

	return c.JSON(fiber.Map{"message": "Blog post updated successfully", "post": updated})
}

// Delete godoc
// @Summary      Delete a post (owner only)
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  map[string]interface{}
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/{postId} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	post, ok, err := h.loadOwnedPost(c)
	if !ok {
		return err
	}

	if err := h.Posts.Delete(c.Context(), post.ID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
		}
		return internalError(c, "delete post", err)
	}

	return c.JSON(fiber.Map{"message": "Blog post deleted successfully"})
}

// Rate godoc
// @Summary      Rate a post (once per user)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string           true  "Post ID (hex)"
// @Param        data    body      dto.RatePostDTO  true  "Rating 1-5"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/{postId}/rate [post]
func (h *PostHandler) Rate(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	post, ok, err := h.loadPost(c)
	if !ok {
		return err
	}

	var body dto.RatePostDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, _ := bson.ObjectIDFromHex(uid)
	for _, r := range post.Ratings {
		if r.UserID == userID {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "You have already rated this post"})
		}
	}

	updated, err := h.Posts.AddRating(c.Context(), post.ID, userID, body.Rating)
	if errors.Is(err, repository.ErrAlreadyRated) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "You have already rated this post"})
	}
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return internalError(c, "rate post", err)
	}

	return c.JSON(fiber.Map{"message": "Rating added successfully", "post": updated})
}

// Comment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string          true  "Post ID (hex)"
// @Param        data    body      dto.CommentDTO  true  "Comment"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/{postId}/comment [post]
func (h *PostHandler) Comment(c *fiber.Ctx) error {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return err
	}

	post, ok, err := h.loadPost(c)
	if !ok {
		return err
	}

	var body dto.CommentDTO
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body"})
	}
	if err := h.Validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, _ := bson.ObjectIDFromHex(uid)
	updated, err := h.Posts.AddComment(c.Context(), post.ID, model.Comment{
		UserID:  userID,
		Content: body.Content,
	})
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return internalError(c, "comment", err)
	}

	if post.Author != userID {
		if err := h.Users.PushNotification(c.Context(), post.Author, model.Notification{
			Type:   model.NotificationComment,
			PostID: post.ID,
			UserID: userID,
		}); err != nil {
			return internalError(c, "comment", err)
		}
	}

	return c.JSON(fiber.Map{"message": "Comment added successfully", "post": updated})
}

// Search godoc
// @Summary      Search posts by keyword, category or author name
// @Tags         posts
// @Produce      json
// @Param        keyword    query     string  false  "Regex over title/content, case-insensitive"
// @Param        category   query     string  false  "Exact category"
// @Param        author     query     string  false  "Author username"
// @Param        sortBy     query     string  false  "Sort field (default createdAt)"
// @Param        sortOrder  query     string  false  "asc or desc"
// @Success      200        {array}   model.Post
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /post/search [get]
func (h *PostHandler) Search(c *fiber.Ctx) error {
	opt := model.SearchOptions{
		Keyword:   c.Query("keyword"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	if author := c.Query("author"); author != "" {
		user, err := h.Users.FindByUsername(c.Context(), author)
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Author not found"})
		}
		if err != nil {
			return internalError(c, "search", err)
		}
		opt.AuthorID = user.ID
	}

	results, err := h.Posts.Search(c.Context(), opt)
	if err != nil {
		return internalError(c, "search", err)
	}
	return c.JSON(results)
}

// AdminList godoc
// @Summary      List every post, projected, author populated
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   model.AdminPost
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /post/admin/posts [get]
func (h *PostHandler) AdminList(c *fiber.Ctx) error {
	posts, err := h.Posts.AdminList(c.Context())
	if err != nil {
		return internalError(c, "admin posts", err)
	}
	return c.JSON(posts)
}

// AdminGet godoc
// @Summary      View one post, author populated
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  model.AdminPostDetail
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/admin/posts/{postId} [get]
func (h *PostHandler) AdminGet(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}

	post, err := h.Posts.AdminFindByID(c.Context(), postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return internalError(c, "admin post", err)
	}
	return c.JSON(post)
}

// Disable godoc
// @Summary      Soft-disable a post
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        postId  path      string  true  "Post ID (hex)"
// @Success      200     {object}  map[string]interface{}
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /post/admin/disable-blog/{postId} [put]
func (h *PostHandler) Disable(c *fiber.Ctx) error {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}

	post, err := h.Posts.SetDisabled(c.Context(), postID, true)
	if errors.Is(err, repository.ErrPostNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return internalError(c, "disable post", err)
	}
	return c.JSON(fiber.Map{"message": "Blog disabled successfully", "post": post})
}

// loadPost fetches the post from the :postId route param. ok reports whether
// the caller should continue; when false the response is already written.
func (h *PostHandler) loadPost(c *fiber.Ctx) (*model.Post, bool, error) {
	postID, err := bson.ObjectIDFromHex(c.Params("postId"))
	if err != nil {
		return nil, false, c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Blog post not found"})
	}

	post, err := h.Posts.FindByID(c.Context(), postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, false, c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "Blog post not found"})
	}
	if err != nil {
		return nil, false, internalError(c, "load post", err)
	}
	return post, true, nil
}

// loadOwnedPost is loadPost plus the ownership gate: requester id must match
// the post author, compared as hex strings.
func (h *PostHandler) loadOwnedPost(c *fiber.Ctx) (*model.Post, bool, error) {
	uid, err := middleware.UIDFromLocals(c)
	if err != nil {
		return nil, false, err
	}

	post, ok, err := h.loadPost(c)
	if !ok {
		return nil, false, err
	}

	if post.Author.Hex() != uid {
		return nil, false, c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "Unauthorized - You are not the owner of this post"})
	}
	return post, true, nil
}
