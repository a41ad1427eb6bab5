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

// UserRepository defines the persistence operations on user documents.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	GetByMatricule(ctx context.Context, matricule string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByEmailOrPhone(ctx context.Context, identifier string) (*model.User, error)

	// GetByActiveSessionToken resolves the user whose current session holds
	// the given access token.
	GetByActiveSessionToken(ctx context.Context, token string) (*model.User, error)

	UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error
	UpdateStatus(ctx context.Context, id bson.ObjectID, status model.Status) error
	UpdateResetCode(ctx context.Context, id bson.ObjectID, code string, expiresAt time.Time) error
	ClearResetCode(ctx context.Context, id bson.ObjectID) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates the user repository and its unique indexes.
// The indexes, not the pre-insert checks, are the authoritative guard against
// duplicate matricules, phones and emails.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "matricule", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse so users without an email do not collide on the
			// missing field.
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	}

	return user, nil
}

func (r *userMongoRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userMongoRepository) GetByMatricule(ctx context.Context, matricule string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"matricule": matricule})
}

func (r *userMongoRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *userMongoRepository) GetByEmailOrPhone(ctx context.Context, identifier string) (*model.User, error) {
	return r.findOne(ctx, bson.M{
		"$or": bson.A{
			bson.M{"email": identifier},
			bson.M{"phone": identifier},
		},
	})
}

func (r *userMongoRepository) GetByActiveSessionToken(ctx context.Context, token string) (*model.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         sessionCollection,
			"localField":   "_id",
			"foreignField": "user",
			"as":           "sessions",
		}}},
		{{Key: "$match", Value: bson.M{"sessions.token": token}}},
		{{Key: "$limit", Value: 1}},
	}

	cursor, err := r.db.Collection(userCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, mongo.ErrNoDocuments
	}

	var user model.User
	if err := cursor.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error {
	return r.set(ctx, id, bson.M{"password": hash})
}

func (r *userMongoRepository) UpdateStatus(ctx context.Context, id bson.ObjectID, status model.Status) error {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *userMongoRepository) UpdateResetCode(
	ctx context.Context,
	id bson.ObjectID,
	code string,
	expiresAt time.Time,
) error {
	return r.set(ctx, id, bson.M{
		"identifier_token":            code,
		"identifier_token_expires_at": expiresAt,
	})
}

func (r *userMongoRepository) ClearResetCode(ctx context.Context, id bson.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{
			"identifier_token":            "",
			"identifier_token_expires_at": "",
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *userMongoRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	result := r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": id})
	return result.Err()
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) set(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
