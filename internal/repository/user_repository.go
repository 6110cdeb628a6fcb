package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_platform/model"
)

var (
	ErrDuplicateEmail = errors.New("user already exists")
	ErrUserNotFound   = errors.New("user not found")
)

// UserRepository is the sole mutator of user documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Create inserts the user and fills in the generated id. The unique email
// index reports a duplicate as write error 11000.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Follow records that user id now follows target. $addToSet keeps the array
// free of duplicates even when two requests race.
func (r *UserRepository) Follow(ctx context.Context, id, target bson.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"followers": target}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) PushNotification(ctx context.Context, id bson.ObjectID, n model.Notification) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"notifications": n}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UnreadNotifications(ctx context.Context, id bson.ObjectID) ([]model.Notification, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	unread := []model.Notification{}
	for _, n := range u.Notifications {
		if !n.Seen {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (r *UserRepository) MarkNotificationsSeen(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notifications.$[].seen": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetBlocked flips the blocked flag and returns the updated document.
func (r *UserRepository) SetBlocked(ctx context.Context, id bson.ObjectID, blocked bool) (*model.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u model.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isBlocked": blocked}},
		opts,
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) All(ctx context.Context) ([]model.User, error) {
	cursor, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func isDuplicateKey(err error) bool {
	var we mongo.WriteException
	return errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000
}
