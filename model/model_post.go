package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rating is embedded in the post document; the store guarantees at most one
// entry per user.
type Rating struct {
	UserID bson.ObjectID `json:"userId" bson:"userId"`
	Rating float64       `json:"rating" bson:"rating"`
}

type Comment struct {
	UserID  bson.ObjectID `json:"userId"  bson:"userId"`
	Content string        `json:"content" bson:"content"`
}

// Post is the store document. IsDisabled soft-hides the post from public
// listings without deleting it.
type Post struct {
	ID         bson.ObjectID `json:"id"                 bson:"_id,omitempty"`
	Title      string        `json:"title"              bson:"title"`
	Content    string        `json:"content"            bson:"content"`
	Author     bson.ObjectID `json:"author"             bson:"author"`
	Category   string        `json:"category,omitempty" bson:"category,omitempty"`
	IsDisabled bool          `json:"isDisabled"         bson:"isDisabled"`
	Ratings    []Rating      `json:"ratings"            bson:"ratings"`
	Comments   []Comment     `json:"comments"           bson:"comments"`
	CreatedAt  time.Time     `json:"createdAt"          bson:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"          bson:"updatedAt"`
}

// SearchOptions collects the /post/search query parameters after the author
// name has been resolved to an id.
type SearchOptions struct {
	Keyword   string
	Category  string
	AuthorID  bson.ObjectID
	SortBy    string
	SortOrder string
}

// AuthorRef is the populated author projection used on admin views.
type AuthorRef struct {
	ID       bson.ObjectID `json:"id"       bson:"_id"`
	Username string        `json:"username" bson:"username"`
}

// AdminPost is the projected shape of the admin post listing.
type AdminPost struct {
	ID        bson.ObjectID `json:"id"        bson:"_id"`
	Title     string        `json:"title"     bson:"title"`
	Author    AuthorRef     `json:"author"    bson:"author"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	Ratings   []Rating      `json:"ratings"   bson:"ratings"`
}

// AdminPostDetail is a full post with the author populated, for the admin
// single-post view.
type AdminPostDetail struct {
	ID         bson.ObjectID `json:"id"                 bson:"_id"`
	Title      string        `json:"title"              bson:"title"`
	Content    string        `json:"content"            bson:"content"`
	Author     AuthorRef     `json:"author"             bson:"author"`
	Category   string        `json:"category,omitempty" bson:"category,omitempty"`
	IsDisabled bool          `json:"isDisabled"         bson:"isDisabled"`
	Ratings    []Rating      `json:"ratings"            bson:"ratings"`
	Comments   []Comment     `json:"comments"           bson:"comments"`
	CreatedAt  time.Time     `json:"createdAt"          bson:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"          bson:"updatedAt"`
}
