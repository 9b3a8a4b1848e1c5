package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invisio/invisio-backend/internal/model"
)

// UserRepo persists accounts in the Users collection.
type UserRepo struct {
	users Collection[model.Account]
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: NewCollection[model.Account](db.Collection(UsersCollection))}
}

// Create inserts a. An empty ID is replaced with a fresh one before insert.
func (r *UserRepo) Create(ctx context.Context, a *model.Account) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return r.users.InsertOne(ctx, *a)
}

// FindByEmail matches email exactly as stored (no case folding).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	return r.users.FindOne(ctx, bson.M{"email": email})
}
