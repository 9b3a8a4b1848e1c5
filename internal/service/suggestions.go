package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/queue"
	"github.com/invisio/invisio-backend/internal/repository"
)

// Suggestions manages suggestion lifecycle and per-user favorites. Only the
// owner may publish, archive or delete a suggestion; anyone authenticated
// may favorite one.
type Suggestions struct {
	store     SuggestionStore
	favorites FavoriteStore
	events    EventPublisher
	log       *slog.Logger
	now       func() time.Time
}

func NewSuggestions(store SuggestionStore, favorites FavoriteStore, events EventPublisher, log *slog.Logger) *Suggestions {
	return &Suggestions{store: store, favorites: favorites, events: events, log: log, now: time.Now}
}

// Create stores a user-submitted suggestion.
func (s *Suggestions) Create(ctx context.Context, userID, headline, description string, public bool) (model.Suggestion, error) {
	return s.create(ctx, model.Suggestion{
		Headline:    headline,
		Description: description,
		UserID:      userID,
		IsPublic:    public,
	}, queue.SourceManual)
}

func (s *Suggestions) create(ctx context.Context, sg model.Suggestion, source string) (model.Suggestion, error) {
	sg.Timestamp = s.now().UTC()
	sg.IsArchived = false
	if err := s.store.Create(ctx, &sg); err != nil {
		return model.Suggestion{}, fmt.Errorf("service.Suggestions.Create: %w", err)
	}
	_ = s.events.Publish(ctx, queue.SuggestionCreatedQueue, queue.SuggestionCreatedEvent{
		SuggestionID: sg.ID,
		UserID:       sg.UserID,
		Headline:     sg.Headline,
		Source:       source,
		IsPublic:     sg.IsPublic,
		CreatedAt:    sg.Timestamp.Format(time.RFC3339),
	})
	return sg, nil
}

// ToggleFavorite flips the caller's favorite mark on a suggestion and
// reports whether it is now favorited.
func (s *Suggestions) ToggleFavorite(ctx context.Context, userID, id string) (bool, error) {
	const op = "service.Suggestions.ToggleFavorite"

	if _, err := s.get(ctx, id); err != nil {
		return false, err
	}
	fav, err := s.favorites.Exists(ctx, userID, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if fav {
		if err := s.favorites.Remove(ctx, userID, id); err != nil {
			return false, fmt.Errorf("%s: remove: %w", op, err)
		}
		return false, nil
	}
	if err := s.favorites.Add(ctx, &model.Favorite{UserID: userID, SuggestionID: id}); err != nil {
		return false, fmt.Errorf("%s: add: %w", op, err)
	}
	return true, nil
}

// TogglePublic flips the visibility of an owned suggestion and returns the
// new value.
func (s *Suggestions) TogglePublic(ctx context.Context, userID, id string) (bool, error) {
	sg, err := s.owned(ctx, userID, id)
	if err != nil {
		return false, err
	}
	matched, err := s.store.SetPublic(ctx, id, !sg.IsPublic)
	if err != nil {
		return false, fmt.Errorf("service.Suggestions.TogglePublic: %w", err)
	}
	if !matched {
		return false, ErrNotFound
	}
	return !sg.IsPublic, nil
}

// Archive soft-deletes an owned suggestion. Archiving twice is not an error.
func (s *Suggestions) Archive(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	matched, err := s.store.SetArchived(ctx, id, true)
	if err != nil {
		return fmt.Errorf("service.Suggestions.Archive: %w", err)
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// Delete removes an owned suggestion. Favorites pointing at it are left in
// place and simply stop resolving.
func (s *Suggestions) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.Suggestions.Delete: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Suggestions) ListPublic(ctx context.Context) ([]model.Suggestion, error) {
	list, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.Suggestions.ListPublic: %w", err)
	}
	return list, nil
}

func (s *Suggestions) ListArchived(ctx context.Context, userID string) ([]model.Suggestion, error) {
	list, err := s.store.ListArchived(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.Suggestions.ListArchived: %w", err)
	}
	return list, nil
}

// ListFavorites returns the suggestions the user favorited that still exist.
func (s *Suggestions) ListFavorites(ctx context.Context, userID string) ([]model.Suggestion, error) {
	const op = "service.Suggestions.ListFavorites"

	ids, err := s.favorites.SuggestionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(ids) == 0 {
		return []model.Suggestion{}, nil
	}
	list, err := s.store.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func (s *Suggestions) get(ctx context.Context, id string) (model.Suggestion, error) {
	sg, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Suggestion{}, ErrNotFound
	}
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("service.Suggestions.get: %w", err)
	}
	return sg, nil
}

func (s *Suggestions) owned(ctx context.Context, userID, id string) (model.Suggestion, error) {
	sg, err := s.get(ctx, id)
	if err != nil {
		return model.Suggestion{}, err
	}
	if sg.UserID != userID {
		return model.Suggestion{}, ErrForbidden
	}
	return sg, nil
}
