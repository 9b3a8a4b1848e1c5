package service

import (
	"context"
	"fmt"
	"time"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/utils"
)

// Blacklist records logged-out tokens and answers whether a token was
// revoked. Entries are matched on the exact token string.
type Blacklist struct {
	store DenylistStore
	now   func() time.Time
}

func NewBlacklist(store DenylistStore) *Blacklist {
	return &Blacklist{store: store, now: time.Now}
}

// Revoke denylists token using the expiry encoded in the token itself. The
// signature is not checked. Input that does not decode as a token with an
// exp claim is ignored and reported as (false, nil). Revoking twice adds a
// second entry.
func (b *Blacklist) Revoke(ctx context.Context, token string) (bool, error) {
	exp, ok := utils.UnverifiedExpiry(token)
	if !ok {
		return false, nil
	}
	err := b.store.Insert(ctx, model.DenylistEntry{
		Token:     token,
		Expiry:    exp.UTC(),
		CreatedAt: b.now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("service.Blacklist.Revoke: %w", err)
	}
	return true, nil
}

// IsRevoked reports whether token has a denylist entry.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	ok, err := b.store.Exists(ctx, token)
	if err != nil {
		return false, fmt.Errorf("service.Blacklist.IsRevoked: %w", err)
	}
	return ok, nil
}
