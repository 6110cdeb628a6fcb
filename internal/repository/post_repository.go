package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blog_platform/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrAlreadyRated = errors.New("already rated")
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var p model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of enabled posts, newest first.
func (r *PostRepository) List(ctx context.Context, page, limit int64) ([]model.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	return r.find(ctx, bson.M{"isDisabled": false}, opts)
}

// Feed returns the newest enabled posts whose author is in the given set.
func (r *PostRepository) Feed(ctx context.Context, authors []bson.ObjectID, limit int64) ([]model.Post, error) {
	if len(authors) == 0 {
		return []model.Post{}, nil
	}

	filter := bson.M{
		"author":     bson.M{"$in": authors},
		"isDisabled": false,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	return r.find(ctx, filter, opts)
}

// Update applies a partial edit: an empty title or content keeps the stored
// value. That means a field can never be cleared through this path; only
// omission falls back to the existing value.
func (r *PostRepository) Update(ctx context.Context, id bson.ObjectID, title, content string) (*model.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if title != "" {
		set["title"] = title
	}
	if content != "" {
		set["content"] = content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddRating appends at most one rating per user. The filter excludes posts
// the user has already rated, so two concurrent requests cannot both push.
func (r *PostRepository) AddRating(ctx context.Context, postID, userID bson.ObjectID, rating float64) (*model.Post, error) {
	filter := bson.M{
		"_id":            postID,
		"ratings.userId": bson.M{"$ne": userID},
	}
	update := bson.M{"$push": bson.M{"ratings": model.Rating{UserID: userID, Rating: rating}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// no match: either the post is gone or this user already rated it
		if _, ferr := r.FindByID(ctx, postID); ferr != nil {
			return nil, ferr
		}
		return nil, ErrAlreadyRated
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) AddComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) SetDisabled(ctx context.Context, id bson.ObjectID, disabled bool) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isDisabled": disabled}},
		opts,
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Search(ctx context.Context, opt model.SearchOptions) ([]model.Post, error) {
	opts := options.Find().SetSort(searchSort(opt))
	return r.find(ctx, searchFilter(opt), opts)
}

// AdminList returns every post projected down to title, author, creation
// time and ratings, with the author username joined in.
func (r *PostRepository) AdminList(ctx context.Context) ([]model.AdminPost, error) {
	cursor, err := r.col.Aggregate(ctx, adminPipeline(nil))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []model.AdminPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AdminFindByID returns one post, disabled or not, with the author joined in.
func (r *PostRepository) AdminFindByID(ctx context.Context, id bson.ObjectID) (*model.AdminPostDetail, error) {
	cursor, err := r.col.Aggregate(ctx, adminPipeline(bson.M{"_id": id}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []model.AdminPostDetail
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrPostNotFound
	}
	return &posts[0], nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]model.Post, error) {
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
