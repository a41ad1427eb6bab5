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

// RoleRepository defines the persistence operations on role documents. Roles
// are created administratively; the auth flows only resolve them by name.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) (*model.Role, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*model.Role, error)
	GetByName(ctx context.Context, name string) (*model.Role, error)
}

const roleCollection = "roles"

type roleMongoRepository struct {
	db *mongo.Database
}

// NewRoleMongoRepository creates the role repository and its unique indexes.
func NewRoleMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) RoleRepository {
	collection := db.Collection(roleCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create role indexes")
	}

	return &roleMongoRepository{db: db}
}

func (r *roleMongoRepository) Create(ctx context.Context, role *model.Role) (*model.Role, error) {
	now := time.Now()
	role.CreatedAt = now
	role.UpdatedAt = now

	result, err := r.db.Collection(roleCollection).InsertOne(ctx, role)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		role.ID = objectID
	}

	return role, nil
}

func (r *roleMongoRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *roleMongoRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *roleMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Role, error) {
	result := r.db.Collection(roleCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var role model.Role
	if err := result.Decode(&role); err != nil {
		return nil, err
	}

	return &role, nil
}
