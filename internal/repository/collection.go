package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Existing databases already use these, so keep them stable.
const (
	UsersCollection       = "Users"
	BlacklistCollection   = "BlacklistedTokens"
	NewsCollection        = "News"
	SuggestionsCollection = "Suggestions"
	FavoritesCollection   = "UserFavorites"
)

// NewID returns a fresh opaque document identifier.
func NewID() string { return primitive.NewObjectID().Hex() }

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Collection is a typed view of a Mongo collection whose documents decode
// into T. It is safe for concurrent use because *mongo.Collection is.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection wraps coll.
func NewCollection[T any](coll *mongo.Collection) Collection[T] {
	return Collection[T]{coll: coll}
}

// InsertOne stores doc.
func (c Collection[T]) InsertOne(ctx context.Context, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

// InsertMany stores docs in order and returns how many were written.
func (c Collection[T]) InsertMany(ctx context.Context, docs []T) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]interface{}, len(docs))
	for i := range docs {
		batch[i] = docs[i]
	}
	res, err := c.coll.InsertMany(ctx, batch)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// FindOne returns the first document matching filter or ErrNotFound.
func (c Collection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var out T
	err := c.coll.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	return out, err
}

// FindMany returns every document matching filter. The result is never nil.
func (c Collection[T]) FindMany(ctx context.Context, filter bson.M) ([]T, error) {
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Exists reports whether at least one document matches filter.
func (c Collection[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	err := c.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	default:
		return false, err
	}
}

// UpdateOne applies set as a $set patch to the first document matching filter.
func (c Collection[T]) UpdateOne(ctx context.Context, filter, set bson.M) (UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteOne removes the first document matching filter and returns the
// number of deleted documents (0 or 1).
func (c Collection[T]) DeleteOne(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
