package main

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/invisio/invisio-backend/internal/config"
	"github.com/invisio/invisio-backend/internal/database"
	"github.com/invisio/invisio-backend/internal/repository"
	"github.com/invisio/invisio-backend/internal/repository/memrepo"
	"github.com/invisio/invisio-backend/internal/service"
)

// stores groups the persistence backends the services run on.
type stores struct {
	users       service.UserStore
	denylist    service.DenylistStore
	news        service.NewsStore
	suggestions service.SuggestionStore
	favorites   service.FavoriteStore

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return &stores{
			users:       memrepo.NewUsers(),
			denylist:    memrepo.NewDenylist(),
			news:        memrepo.NewNews(),
			suggestions: memrepo.NewSuggestions(),
			favorites:   memrepo.NewFavorites(),
			ping:        func(context.Context) error { return nil },
			close:       func(context.Context) error { return nil },
		}, nil
	}

	client, db, err := database.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureIndexes(ctx, db, cfg.DenylistTTLIndex); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return mongoStores(client, db), nil
}

func mongoStores(client *mongo.Client, db *mongo.Database) *stores {
	return &stores{
		users:       repository.NewUserRepo(db),
		denylist:    repository.NewBlacklistRepo(db),
		news:        repository.NewNewsRepo(db),
		suggestions: repository.NewSuggestionRepo(db),
		favorites:   repository.NewFavoriteRepo(db),
		ping:        func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
		close:       client.Disconnect,
	}
}
