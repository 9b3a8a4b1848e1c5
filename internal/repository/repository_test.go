package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/invisio/invisio-backend/internal/model"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("find by email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.Users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "64b7f0c2a1b2c3d4e5f60708"},
			{Key: "fullName", Value: "Ada Lovelace"},
			{Key: "email", Value: "ada@x.io"},
			{Key: "passwordHash", Value: "$2a$10$abc"},
			{Key: "companyName", Value: "Acme"},
		}))

		got, err := NewUserRepo(mt.DB).FindByEmail(ctx, "ada@x.io")
		require.NoError(t, err)
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60708", got.ID)
		assert.Equal(t, "Acme", got.CompanyName)
		assert.Equal(t, "$2a$10$abc", got.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.Users", mtest.FirstBatch))

		_, err := NewUserRepo(mt.DB).FindByEmail(ctx, "nobody@x.io")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		a := &model.Account{FullName: "Ada", Email: "ada@x.io", PasswordHash: "h", CompanyName: "Acme"}
		require.NoError(t, NewUserRepo(mt.DB).Create(ctx, a))
		assert.Len(t, a.ID, 24)
	})

	mt.Run("create write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key",
		}))

		err := NewUserRepo(mt.DB).Create(ctx, &model.Account{Email: "ada@x.io"})
		assert.Error(t, err)
	})
}

func TestBlacklistRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.BlacklistedTokens", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "x"}}))

		ok, err := NewBlacklistRepo(mt.DB).Exists(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	mt.Run("absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.BlacklistedTokens", mtest.FirstBatch))

		ok, err := NewBlacklistRepo(mt.DB).Exists(ctx, "tok")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	mt.Run("store error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "boom",
		}))

		_, err := NewBlacklistRepo(mt.DB).Exists(ctx, "tok")
		assert.Error(t, err)
	})

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewBlacklistRepo(mt.DB).Insert(ctx, model.DenylistEntry{
			Token: "tok", Expiry: time.Now().Add(time.Hour), CreatedAt: time.Now(),
		})
		assert.NoError(t, err)
	})
}

func TestNewsRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("insert many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		items := []model.NewsItem{{Headline: "a"}, {Headline: "b"}}
		n, err := NewNewsRepo(mt.DB).InsertMany(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.NotEmpty(t, items[0].ID)
		assert.NotEqual(t, items[0].ID, items[1].ID)
	})

	mt.Run("insert none", func(mt *mtest.T) {
		n, err := NewNewsRepo(mt.DB).InsertMany(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	mt.Run("all", func(mt *mtest.T) {
		ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.News", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "n1"}, {Key: "headline", Value: "A"}, {Key: "timestamp", Value: ts}},
			bson.D{{Key: "_id", Value: "n2"}, {Key: "headline", Value: "B"}, {Key: "timestamp", Value: ts}},
		))

		list, err := NewNewsRepo(mt.DB).All(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "B", list[1].Headline)
		assert.True(t, list[0].Timestamp.Equal(ts))
	})

	mt.Run("all empty is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.News", mtest.FirstBatch))

		list, err := NewNewsRepo(mt.DB).All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestSuggestionRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("get by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.Suggestions", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s1"},
			{Key: "headline", Value: "Expand"},
			{Key: "userId", Value: "u1"},
			{Key: "isPublic", Value: true},
			{Key: "isArchived", Value: false},
		}))

		s, err := NewSuggestionRepo(mt.DB).GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
		assert.True(t, s.IsPublic)
	})

	mt.Run("set archived matched but unchanged", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		ok, err := NewSuggestionRepo(mt.DB).SetArchived(ctx, "s1", true)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	mt.Run("set public missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		ok, err := NewSuggestionRepo(mt.DB).SetPublic(ctx, "nope", true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ok, err := NewSuggestionRepo(mt.DB).Delete(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	mt.Run("list by ids skips query when empty", func(mt *mtest.T) {
		list, err := NewSuggestionRepo(mt.DB).ListByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestFavoriteRepo(t *testing.T) {
	mt := newMock(t)
	ctx := context.Background()

	mt.Run("suggestion ids", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "INVISIODb.UserFavorites", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "f1"}, {Key: "userId", Value: "u"}, {Key: "suggestionId", Value: "s1"}},
			bson.D{{Key: "_id", Value: "f2"}, {Key: "userId", Value: "u"}, {Key: "suggestionId", Value: "s2"}},
		))

		ids, err := NewFavoriteRepo(mt.DB).SuggestionIDs(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s2"}, ids)
	})

	mt.Run("remove", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(t, NewFavoriteRepo(mt.DB).Remove(ctx, "u", "s1"))
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMock(t)

	mt.Run("with ttl", func(mt *mtest.T) {
		for i := 0; i < 4; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		assert.NoError(t, EnsureIndexes(context.Background(), mt.DB, true))
	})

	mt.Run("failure names collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not allowed",
		}))
		err := EnsureIndexes(context.Background(), mt.DB, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), UsersCollection)
	})
}
