// Package service holds the application logic behind the HTTP handlers:
// account credentials, token revocation, news analysis and suggestions.
// Services depend on the small store interfaces below, which the Mongo
// repositories and the in-memory stores both satisfy.
package service

import (
	"context"
	"errors"

	"github.com/invisio/invisio-backend/internal/model"
)

var (
	ErrAlreadyExists      = errors.New("account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrNoNews             = errors.New("no news items to analyze")
	ErrPasswordTooLong    = errors.New("password too long")
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	Create(ctx context.Context, a *model.Account) error
}

type DenylistStore interface {
	Insert(ctx context.Context, e model.DenylistEntry) error
	Exists(ctx context.Context, token string) (bool, error)
}

type NewsStore interface {
	InsertMany(ctx context.Context, items []model.NewsItem) (int, error)
	All(ctx context.Context) ([]model.NewsItem, error)
}

type SuggestionStore interface {
	Create(ctx context.Context, s *model.Suggestion) error
	GetByID(ctx context.Context, id string) (model.Suggestion, error)
	ListPublic(ctx context.Context) ([]model.Suggestion, error)
	ListArchived(ctx context.Context, userID string) ([]model.Suggestion, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Suggestion, error)
	SetPublic(ctx context.Context, id string, public bool) (bool, error)
	SetArchived(ctx context.Context, id string, archived bool) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type FavoriteStore interface {
	Exists(ctx context.Context, userID, suggestionID string) (bool, error)
	Add(ctx context.Context, f *model.Favorite) error
	Remove(ctx context.Context, userID, suggestionID string) error
	SuggestionIDs(ctx context.Context, userID string) ([]string, error)
}

// EventPublisher sends a domain event to the named queue.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, event any) error
}

// TextGenerator produces a free-text reply for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
