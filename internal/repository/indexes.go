package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates lookup indexes used on hot paths. Users.email is
// indexed but not unique; duplicate signups racing past the existence
// check are tolerated. With denylistTTL the denylist expires entries once
// the token they reference has expired.
func EnsureIndexes(ctx context.Context, db *mongo.Database, denylistTTL bool) error {
	const op = "repository.EnsureIndexes"

	denylist := []mongo.IndexModel{{Keys: bson.D{{Key: "token", Value: 1}}}}
	if denylistTTL {
		denylist = append(denylist, mongo.IndexModel{
			Keys:    bson.D{{Key: "expiry", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		})
	}

	plan := []struct {
		coll    string
		indexes []mongo.IndexModel
	}{
		{UsersCollection, []mongo.IndexModel{{Keys: bson.D{{Key: "email", Value: 1}}}}},
		{BlacklistCollection, denylist},
		{SuggestionsCollection, []mongo.IndexModel{{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isArchived", Value: 1}}}}},
		{FavoritesCollection, []mongo.IndexModel{{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "suggestionId", Value: 1}}}}},
	}
	for _, p := range plan {
		if _, err := db.Collection(p.coll).Indexes().CreateMany(ctx, p.indexes); err != nil {
			return fmt.Errorf("%s: %s: %w", op, p.coll, err)
		}
	}
	return nil
}
