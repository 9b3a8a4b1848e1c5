package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invisio/invisio-backend/internal/model"
)

// BlacklistRepo stores invalidated session tokens. The collection is append
// only; nothing here deletes or updates entries.
type BlacklistRepo struct {
	entries Collection[model.DenylistEntry]
}

func NewBlacklistRepo(db *mongo.Database) *BlacklistRepo {
	return &BlacklistRepo{entries: NewCollection[model.DenylistEntry](db.Collection(BlacklistCollection))}
}

// Insert appends e without checking for an existing entry for the same token.
func (r *BlacklistRepo) Insert(ctx context.Context, e model.DenylistEntry) error {
	if e.ID == "" {
		e.ID = NewID()
	}
	return r.entries.InsertOne(ctx, e)
}

// Exists reports whether token was ever denylisted.
func (r *BlacklistRepo) Exists(ctx context.Context, token string) (bool, error) {
	return r.entries.Exists(ctx, bson.M{"token": token})
}
