package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blog_platform/model"
)

// MockUserDirectory satisfies UserDirectory and UserSource.
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserDirectory) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) Follow(ctx context.Context, id, target bson.ObjectID) error {
	args := m.Called(ctx, id, target)
	return args.Error(0)
}

func (m *MockUserDirectory) PushNotification(ctx context.Context, id bson.ObjectID, n model.Notification) error {
	args := m.Called(ctx, id, n)
	return args.Error(0)
}

func (m *MockUserDirectory) UnreadNotifications(ctx context.Context, id bson.ObjectID) ([]model.Notification, error) {
	args := m.Called(ctx, id)
	if ns := args.Get(0); ns != nil {
		return ns.([]model.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) MarkNotificationsSeen(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserDirectory) SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*model.User, error) {
	args := m.Called(ctx, id, blocked)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) All(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if us := args.Get(0); us != nil {
		return us.([]model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPostStore satisfies PostStore and FeedSource.
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) Create(ctx context.Context, p *model.Post) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPostStore) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) List(ctx context.Context, page, limit int64) ([]model.Post, error) {
	args := m.Called(ctx, page, limit)
	if ps := args.Get(0); ps != nil {
		return ps.([]model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Feed(ctx context.Context, authors []bson.ObjectID, limit int64) ([]model.Post, error) {
	args := m.Called(ctx, authors, limit)
	if ps := args.Get(0); ps != nil {
		return ps.([]model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Update(ctx context.Context, id bson.ObjectID, title, content string) (*model.Post, error) {
	args := m.Called(ctx, id, title, content)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Delete(ctx context.Context, id bson.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostStore) AddRating(ctx context.Context, postID, userID bson.ObjectID, rating float64) (*model.Post, error) {
	args := m.Called(ctx, postID, userID, rating)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) AddComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) (*model.Post, error) {
	args := m.Called(ctx, postID, comment)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) SetDisabled(ctx context.Context, id bson.ObjectID, disabled bool) (*model.Post, error) {
	args := m.Called(ctx, id, disabled)
	if p := args.Get(0); p != nil {
		return p.(*model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) Search(ctx context.Context, opt model.SearchOptions) ([]model.Post, error) {
	args := m.Called(ctx, opt)
	if ps := args.Get(0); ps != nil {
		return ps.([]model.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) AdminList(ctx context.Context) ([]model.AdminPost, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.([]model.AdminPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostStore) AdminFindByID(ctx context.Context, id bson.ObjectID) (*model.AdminPostDetail, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.AdminPostDetail), args.Error(1)
	}
	return nil, args.Error(1)
}
