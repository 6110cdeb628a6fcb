package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_platform/internal/token"
	"blog_platform/model"
)

func testTokens() *token.Service {
	return token.NewService("test-secret-key", time.Hour)
}

// injectIdentity stands in for the auth middleware in handler tests.
func injectIdentity(uid, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", uid)
		c.Locals("role", role)
		return c.Next()
	}
}

func newUserApp(h *UserHandler, uid string) *fiber.App {
	app := fiber.New()
	inject := injectIdentity(uid, model.RoleRegular)

	app.Post("/user/register", h.Register)
	app.Post("/user/login", h.Login)
	app.Post("/user/follow/:userId", inject, h.Follow)
	app.Get("/user/feed", inject, h.Feed)
	app.Get("/user/notifications", inject, h.Notifications)
	app.Put("/user/notifications/mark-seen", inject, h.MarkNotificationsSeen)
	app.Get("/user/admin/users", h.AdminListUsers)
	app.Put("/user/admin/block-user/:userId", h.AdminBlockUser)
	return app
}

func newPostApp(h *PostHandler, uid string) *fiber.App {
	app := fiber.New()
	inject := injectIdentity(uid, model.RoleRegular)

	app.Post("/post", inject, h.Create)
	app.Get("/post", h.List)
	app.Get("/post/search", h.Search)
	app.Get("/post/admin/posts", h.AdminList)
	app.Get("/post/admin/posts/:postId", h.AdminGet)
	app.Put("/post/admin/disable-blog/:postId", h.Disable)
	app.Get("/post/:postId", h.Get)
	app.Put("/post/:postId", inject, h.Update)
	app.Delete("/post/:postId", inject, h.Delete)
	app.Post("/post/:postId/rate", inject, h.Rate)
	app.Post("/post/:postId/comment", inject, h.Comment)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func decodeArray(t *testing.T, resp *http.Response) []any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body []any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func assertMessage(t *testing.T, resp *http.Response, status int, message string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, message, body["message"])
}

func newValidator() *validator.Validate {
	return validator.New()
}
