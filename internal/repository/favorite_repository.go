package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invisio/invisio-backend/internal/model"
)

// FavoriteRepo stores user→suggestion favorite links.
type FavoriteRepo struct {
	favorites Collection[model.Favorite]
}

func NewFavoriteRepo(db *mongo.Database) *FavoriteRepo {
	return &FavoriteRepo{favorites: NewCollection[model.Favorite](db.Collection(FavoritesCollection))}
}

func (r *FavoriteRepo) Exists(ctx context.Context, userID, suggestionID string) (bool, error) {
	return r.favorites.Exists(ctx, bson.M{"userId": userID, "suggestionId": suggestionID})
}

func (r *FavoriteRepo) Add(ctx context.Context, f *model.Favorite) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return r.favorites.InsertOne(ctx, *f)
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, suggestionID string) error {
	_, err := r.favorites.DeleteOne(ctx, bson.M{"userId": userID, "suggestionId": suggestionID})
	return err
}

// SuggestionIDs lists the ids of every suggestion userID favorited.
func (r *FavoriteRepo) SuggestionIDs(ctx context.Context, userID string) ([]string, error) {
	favs, err := r.favorites.FindMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.SuggestionID)
	}
	return ids, nil
}
