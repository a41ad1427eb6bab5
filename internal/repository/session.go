package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/izthiaka/loumaa/internal/model"
)

// SessionRepository defines the persistence operations on session documents.
type SessionRepository interface {
	// Upsert replaces the user's session with a freshly issued one,
	// creating it on first sign-in. Last writer wins.
	Upsert(ctx context.Context, userID bson.ObjectID, params UpsertSessionParams) error

	GetByUser(ctx context.Context, userID bson.ObjectID) (*model.Session, error)

	// DeleteByUser removes the user's session. Deleting a session that does
	// not exist is not an error.
	DeleteByUser(ctx context.Context, userID bson.ObjectID) error
}

// UpsertSessionParams carries the freshly issued token pair and device tag.
type UpsertSessionParams struct {
	Token        string
	RefreshToken string
	Device       string
}

const sessionCollection = "user_sessions"

type sessionMongoRepository struct {
	db *mongo.Database
}

// NewSessionMongoRepository creates the session repository. The unique index
// on the user field makes one-session-per-user a storage invariant instead of
// a side effect of upsert semantics.
func NewSessionMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) SessionRepository {
	collection := db.Collection(sessionCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "token", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create session indexes")
	}

	return &sessionMongoRepository{db: db}
}

func (r *sessionMongoRepository) Upsert(
	ctx context.Context,
	userID bson.ObjectID,
	params UpsertSessionParams,
) error {
	now := time.Now()
	session := model.Session{
		User:         userID,
		Token:        params.Token,
		RefreshToken: params.RefreshToken,
		Device:       params.Device,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.Collection(sessionCollection).ReplaceOne(
		ctx,
		bson.M{"user": userID},
		session,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *sessionMongoRepository) GetByUser(ctx context.Context, userID bson.ObjectID) (*model.Session, error) {
	result := r.db.Collection(sessionCollection).FindOne(ctx, bson.M{"user": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var session model.Session
	if err := result.Decode(&session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (r *sessionMongoRepository) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.db.Collection(sessionCollection).DeleteOne(ctx, bson.M{"user": userID})
	return err
}
