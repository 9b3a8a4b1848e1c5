package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invisio/invisio-backend/internal/model"
)

// NewsRepo persists submitted news items.
type NewsRepo struct {
	news Collection[model.NewsItem]
}

func NewNewsRepo(db *mongo.Database) *NewsRepo {
	return &NewsRepo{news: NewCollection[model.NewsItem](db.Collection(NewsCollection))}
}

// InsertMany assigns ids to items that lack one and stores them in a single
// batch. items is updated in place.
func (r *NewsRepo) InsertMany(ctx context.Context, items []model.NewsItem) (int, error) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = NewID()
		}
	}
	return r.news.InsertMany(ctx, items)
}

// All returns every stored news item.
func (r *NewsRepo) All(ctx context.Context) ([]model.NewsItem, error) {
	return r.news.FindMany(ctx, bson.M{})
}
