package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an authenticatable principal. The matricule is the opaque
// external identifier shared with humans; the ObjectID stays internal.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Matricule string        `bson:"matricule"`
	Name      string        `bson:"name"`
	Gender    string        `bson:"gender,omitempty"`
	Email     string        `bson:"email,omitempty"`
	Phone     string        `bson:"phone"`
	Status    Status        `bson:"status"`
	Photo     string        `bson:"photo,omitempty"`
	Role      bson.ObjectID `bson:"role"`
	Password  string        `bson:"password"`

	// IdentifierToken holds the pending password-reset code, one slot per
	// user, overwritten by each reset request.
	IdentifierToken          string    `bson:"identifier_token,omitempty"`
	IdentifierTokenExpiresAt time.Time `bson:"identifier_token_expires_at,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}
