package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invisio/invisio-backend/internal/repository/memrepo"
	"github.com/invisio/invisio-backend/internal/utils"
)

func TestRevoke_ValidToken(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewDenylist()
	bl := NewBlacklist(store)

	tok, err := testIssuer().Issue(utils.Identity{ID: "u1", FullName: "A", Email: "a@x.com", Org: "Acme"})
	require.NoError(t, err)

	ok, err := bl.Revoke(ctx, tok.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	revoked, err := bl.IsRevoked(ctx, tok.Token)
	require.NoError(t, err)
	assert.True(t, revoked)

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Expiry.Equal(tok.Exp))
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRevoke_TwiceStaysRevoked(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewDenylist()
	bl := NewBlacklist(store)
	tok, err := testIssuer().Issue(utils.Identity{ID: "u1", FullName: "A", Email: "a@x.com", Org: "Acme"})
	require.NoError(t, err)

	_, err = bl.Revoke(ctx, tok.Token)
	require.NoError(t, err)
	before, _ := bl.IsRevoked(ctx, tok.Token)

	_, err = bl.Revoke(ctx, tok.Token)
	require.NoError(t, err)
	after, _ := bl.IsRevoked(ctx, tok.Token)

	assert.True(t, before)
	assert.True(t, after)
	assert.Len(t, store.Entries(), 2)
}

func TestRevoke_GarbageIsNoop(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewDenylist()
	bl := NewBlacklist(store)

	other, err := testIssuer().Issue(utils.Identity{ID: "u2", FullName: "B", Email: "b@x.com", Org: "Acme"})
	require.NoError(t, err)

	for _, junk := range []string{"", "garbage", "a.b.c", "Bearer"} {
		ok, err := bl.Revoke(ctx, junk)
		require.NoError(t, err, junk)
		assert.False(t, ok, junk)
	}
	assert.Empty(t, store.Entries())

	revoked, err := bl.IsRevoked(ctx, other.Token)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevoke_AcceptsTokenSignedWithOtherSecret(t *testing.T) {
	ctx := context.Background()
	foreign := utils.NewTokenIssuer("someone-else", "x", "y", 0, nil)
	tok, err := foreign.Issue(utils.Identity{ID: "u", FullName: "n", Email: "e", Org: "o"})
	require.NoError(t, err)

	bl := NewBlacklist(memrepo.NewDenylist())
	ok, err := bl.Revoke(ctx, tok.Token)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBlacklist_StoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	bl := NewBlacklist(brokenDenylist{})
	tok, err := testIssuer().Issue(utils.Identity{ID: "u1", FullName: "A", Email: "a@x.com", Org: "Acme"})
	require.NoError(t, err)

	_, err = bl.Revoke(ctx, tok.Token)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = bl.IsRevoked(ctx, tok.Token)
	assert.ErrorIs(t, err, errStoreDown)
}
