package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/invisio/invisio-backend/internal/model"
)

// SuggestionRepo persists suggestions. Ownership checks happen in the
// service layer; every method here addresses documents by id only.
type SuggestionRepo struct {
	suggestions Collection[model.Suggestion]
}

func NewSuggestionRepo(db *mongo.Database) *SuggestionRepo {
	return &SuggestionRepo{suggestions: NewCollection[model.Suggestion](db.Collection(SuggestionsCollection))}
}

func (r *SuggestionRepo) Create(ctx context.Context, s *model.Suggestion) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return r.suggestions.InsertOne(ctx, *s)
}

func (r *SuggestionRepo) GetByID(ctx context.Context, id string) (model.Suggestion, error) {
	return r.suggestions.FindOne(ctx, bson.M{"_id": id})
}

// ListPublic returns published suggestions that are not archived.
func (r *SuggestionRepo) ListPublic(ctx context.Context) ([]model.Suggestion, error) {
	return r.suggestions.FindMany(ctx, bson.M{"isPublic": true, "isArchived": false})
}

// ListArchived returns the archived suggestions owned by userID.
func (r *SuggestionRepo) ListArchived(ctx context.Context, userID string) ([]model.Suggestion, error) {
	return r.suggestions.FindMany(ctx, bson.M{"userId": userID, "isArchived": true})
}

// ListByIDs returns the suggestions whose id is in ids. Unknown ids are skipped.
func (r *SuggestionRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Suggestion, error) {
	if len(ids) == 0 {
		return []model.Suggestion{}, nil
	}
	return r.suggestions.FindMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// SetPublic reports whether a suggestion with id exists.
func (r *SuggestionRepo) SetPublic(ctx context.Context, id string, public bool) (bool, error) {
	res, err := r.suggestions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"isPublic": public})
	return res.Matched > 0, err
}

// SetArchived reports whether a suggestion with id exists.
func (r *SuggestionRepo) SetArchived(ctx context.Context, id string, archived bool) (bool, error) {
	res, err := r.suggestions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"isArchived": archived})
	return res.Matched > 0, err
}

// Delete reports whether a document was removed.
func (r *SuggestionRepo) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.suggestions.DeleteOne(ctx, bson.M{"_id": id})
	return n > 0, err
}
