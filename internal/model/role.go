package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is a named permission group referenced, never embedded, by users.
type Role struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Code      string        `bson:"code"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
