package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleRegular = "regular"
	RoleAdmin   = "admin"
)

const (
	NotificationFollow  = "follow"
	NotificationComment = "comment"
)

// Notification lives embedded in its owner's user document. PostID is only
// set for comment notifications.
type Notification struct {
	Type   string        `json:"type"             bson:"type"`
	PostID bson.ObjectID `json:"postId,omitempty" bson:"postId,omitempty"`
	UserID bson.ObjectID `json:"userId"           bson:"userId"`
	Seen   bool          `json:"seen"             bson:"seen"`
}

// User is the directory document. Followers holds the ids of the users this
// user follows; the feed is built from it. Password carries the bcrypt hash
// and never serializes to JSON.
type User struct {
	ID            bson.ObjectID   `json:"id"            bson:"_id,omitempty"`
	Username      string          `json:"username"      bson:"username"`
	Email         string          `json:"email"         bson:"email"`
	Password      string          `json:"-"             bson:"password"`
	Role          string          `json:"role"          bson:"role"`
	IsBlocked     bool            `json:"isBlocked"     bson:"isBlocked"`
	Followers     []bson.ObjectID `json:"followers"     bson:"followers"`
	Notifications []Notification  `json:"notifications" bson:"notifications"`
}
