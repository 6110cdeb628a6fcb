package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"blog_platform/internal/repository"
	"blog_platform/model"
)

func newUserHandler(users *MockUserDirectory, posts *MockPostStore) *UserHandler {
	return &UserHandler{
		Users:    users,
		Posts:    posts,
		Tokens:   testTokens(),
		Validate: newValidator(),
	}
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	userID := bson.NewObjectID()
	var created *model.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
			created.ID = userID
		}).
		Return(nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "User registered successfully", body["message"])

	// the token must decode back to the new user's id and role
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	claims, err := h.Tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, model.RoleRegular, claims.Role)

	// stored as a regular user with a bcrypt hash, not the plaintext
	require.NotNil(t, created)
	assert.Equal(t, model.RoleRegular, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))
	users.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateEmail)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusBadRequest, "User already exists")
}

func TestRegister_MissingFields(t *testing.T) {
	h := newUserHandler(new(MockUserDirectory), new(MockPostStore))
	app := newUserApp(h, "")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/register", map[string]string{
		"email": "alice@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userID := bson.NewObjectID()
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		ID:       userID,
		Email:    "alice@example.com",
		Password: string(hash),
		Role:     model.RoleAdmin,
	}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/login", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter22",
	}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	claims, err := h.Tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&model.User{
		Password: string(hash),
	}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	}))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusUnauthorized, "Invalid credentials")
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	users.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	}))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusUnauthorized, "Invalid credentials")
}

func TestFollow_Self(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("FindByID", mock.Anything, myID).Return(&model.User{ID: myID}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/follow/"+myID.Hex(), nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusBadRequest, "You cannot follow yourself")
}

func TestFollow_UnknownTarget(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	targetID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("FindByID", mock.Anything, targetID).Return(nil, repository.ErrUserNotFound)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/follow/"+targetID.Hex(), nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusNotFound, "User not found")
}

func TestFollow_AlreadyFollowing(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	targetID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("FindByID", mock.Anything, targetID).Return(&model.User{ID: targetID}, nil)
	users.On("FindByID", mock.Anything, myID).Return(&model.User{
		ID:        myID,
		Followers: []bson.ObjectID{targetID},
	}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/follow/"+targetID.Hex(), nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusBadRequest, "You are already following this blogger")
	users.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollow_Success(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	targetID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("FindByID", mock.Anything, targetID).Return(&model.User{ID: targetID}, nil)
	users.On("FindByID", mock.Anything, myID).Return(&model.User{
		ID:        myID,
		Followers: []bson.ObjectID{},
	}, nil)
	users.On("Follow", mock.Anything, myID, targetID).Return(nil)
	users.On("PushNotification", mock.Anything, targetID, model.Notification{
		Type:   model.NotificationFollow,
		UserID: myID,
	}).Return(nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/user/follow/"+targetID.Hex(), nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusOK, "You are now following the blogger")
	users.AssertExpectations(t)
}

func TestFeed_QueriesFollowedAuthors(t *testing.T) {
	users := new(MockUserDirectory)
	posts := new(MockPostStore)
	myID := bson.NewObjectID()
	a := bson.NewObjectID()
	b := bson.NewObjectID()
	h := newUserHandler(users, posts)
	app := newUserApp(h, myID.Hex())

	users.On("FindByID", mock.Anything, myID).Return(&model.User{
		ID:        myID,
		Followers: []bson.ObjectID{a, b},
	}, nil)
	posts.On("Feed", mock.Anything, []bson.ObjectID{a, b}, int64(10)).
		Return([]model.Post{{Author: a}, {Author: b}}, nil)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/user/feed", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeArray(t, resp), 2)
	posts.AssertExpectations(t)
}

func TestNotifications_UnreadOnly(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("UnreadNotifications", mock.Anything, myID).Return([]model.Notification{
		{Type: model.NotificationFollow, UserID: bson.NewObjectID()},
	}, nil)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/user/notifications", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeArray(t, resp), 1)
}

func TestMarkNotificationsSeen(t *testing.T) {
	users := new(MockUserDirectory)
	myID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, myID.Hex())

	users.On("MarkNotificationsSeen", mock.Anything, myID).Return(nil)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/user/notifications/mark-seen", nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusOK, "Notifications marked as seen")
	users.AssertExpectations(t)
}

func TestAdminBlockUser(t *testing.T) {
	users := new(MockUserDirectory)
	targetID := bson.NewObjectID()
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	users.On("SetBlocked", mock.Anything, targetID, true).Return(&model.User{
		ID:        targetID,
		IsBlocked: true,
	}, nil)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/user/admin/block-user/"+targetID.Hex(), nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusOK, "User blocked successfully")
}

func TestAdminBlockUser_InvalidID(t *testing.T) {
	h := newUserHandler(new(MockUserDirectory), new(MockPostStore))
	app := newUserApp(h, "")

	resp, err := app.Test(jsonRequest(http.MethodPut, "/user/admin/block-user/not-a-hex-id", nil))
	require.NoError(t, err)
	assertMessage(t, resp, http.StatusNotFound, "User not found")
}

func TestAdminListUsers(t *testing.T) {
	users := new(MockUserDirectory)
	h := newUserHandler(users, new(MockPostStore))
	app := newUserApp(h, "")

	users.On("All", mock.Anything).Return([]model.User{{Username: "a"}, {Username: "b"}}, nil)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/user/admin/users", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeArray(t, resp), 2)
}
