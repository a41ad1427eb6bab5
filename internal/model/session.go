package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session is the single currently-valid authentication session of a user.
// A unique index on the user field makes one-session-per-user an explicit
// storage invariant; every token issuance replaces the previous document.
type Session struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	User         bson.ObjectID `bson:"user"`
	Token        string        `bson:"token"`
	RefreshToken string        `bson:"refresh_token"`
	Device       string        `bson:"device"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
