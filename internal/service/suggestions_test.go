package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invisio/invisio-backend/internal/queue"
)

func TestSuggestions_CreateIsPrivateByDefault(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc, _, _ := newSuggestions(pub)

	sg, err := svc.Create(ctx, "u1", "Headline", "Body", false)
	require.NoError(t, err)
	assert.NotEmpty(t, sg.ID)
	assert.False(t, sg.IsArchived)
	assert.False(t, sg.Timestamp.IsZero())

	list, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	events := pub.all()
	require.Len(t, events, 1)
	ev := events[0].event.(queue.SuggestionCreatedEvent)
	assert.Equal(t, queue.SourceManual, ev.Source)
	assert.Equal(t, sg.ID, ev.SuggestionID)
}

func TestSuggestions_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSuggestions(&recordingPublisher{})
	sg, err := svc.Create(ctx, "owner", "H", "D", true)
	require.NoError(t, err)

	on, err := svc.ToggleFavorite(ctx, "fan", sg.ID)
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := svc.ListFavorites(ctx, "fan")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, sg.ID, favs[0].ID)

	off, err := svc.ToggleFavorite(ctx, "fan", sg.ID)
	require.NoError(t, err)
	assert.False(t, off)

	favs, err = svc.ListFavorites(ctx, "fan")
	require.NoError(t, err)
	assert.Empty(t, favs)

	_, err = svc.ToggleFavorite(ctx, "fan", "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSuggestions_OwnerOnlyOperations(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSuggestions(&recordingPublisher{})
	sg, err := svc.Create(ctx, "owner", "H", "D", false)
	require.NoError(t, err)

	_, err = svc.TogglePublic(ctx, "intruder", sg.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Archive(ctx, "intruder", sg.ID), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", sg.ID), ErrForbidden)

	_, err = svc.TogglePublic(ctx, "owner", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Archive(ctx, "owner", "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "owner", "missing"), ErrNotFound)
}

func TestSuggestions_TogglePublic(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSuggestions(&recordingPublisher{})
	sg, err := svc.Create(ctx, "owner", "H", "D", false)
	require.NoError(t, err)

	public, err := svc.TogglePublic(ctx, "owner", sg.ID)
	require.NoError(t, err)
	assert.True(t, public)

	list, _ := svc.ListPublic(ctx)
	require.Len(t, list, 1)

	public, err = svc.TogglePublic(ctx, "owner", sg.ID)
	require.NoError(t, err)
	assert.False(t, public)
}

func TestSuggestions_ArchiveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSuggestions(&recordingPublisher{})
	sg, err := svc.Create(ctx, "owner", "H", "D", true)
	require.NoError(t, err)

	require.NoError(t, svc.Archive(ctx, "owner", sg.ID))
	require.NoError(t, svc.Archive(ctx, "owner", sg.ID))

	archived, err := svc.ListArchived(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, archived, 1)

	public, _ := svc.ListPublic(ctx)
	assert.Empty(t, public)

	other, _ := svc.ListArchived(ctx, "someone-else")
	assert.Empty(t, other)
}

func TestSuggestions_DeleteDropsFromFavorites(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSuggestions(&recordingPublisher{})
	sg, err := svc.Create(ctx, "owner", "H", "D", true)
	require.NoError(t, err)
	_, err = svc.ToggleFavorite(ctx, "fan", sg.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "owner", sg.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "owner", sg.ID), ErrNotFound)

	favs, err := svc.ListFavorites(ctx, "fan")
	require.NoError(t, err)
	assert.Empty(t, favs)
}
