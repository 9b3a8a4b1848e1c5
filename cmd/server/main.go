package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"

	"github.com/invisio/invisio-backend/internal/config"
	"github.com/invisio/invisio-backend/internal/handler"
	"github.com/invisio/invisio-backend/internal/llm"
	"github.com/invisio/invisio-backend/internal/middleware"
	"github.com/invisio/invisio-backend/internal/queue"
	"github.com/invisio/invisio-backend/internal/router"
	"github.com/invisio/invisio-backend/internal/service"
	"github.com/invisio/invisio-backend/internal/utils"
)

func main() {
	cfg := config.Load()
	logger := setupLogger(cfg.Env)

	if err := run(cfg, logger); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, logger *slog.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.close(context.Background())) }()

	checks := map[string]handler.Check{"store": st.ping}

	rc, err := config.LoadRedisConfig()
	if err != nil {
		return err
	}
	rdb := config.NewRedisClient(rc)
	if rdb == nil {
		logger.Warn("redis unreachable, rate limiting and caching disabled", slog.String("addr", rc.Address()))
	} else {
		defer func() { err = multierr.Append(err, rdb.Close()) }()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	rateLimit, cache, err := redisMiddleware(rdb, logger)
	if err != nil {
		return err
	}

	var events service.EventPublisher = queue.Noop{}
	if cfg.RabbitURL != "" {
		events = queue.NewPublisher(cfg.RabbitURL, logger)
		if cfg.ConsumerEnabled {
			consumer := queue.NewAuditConsumer(cfg.RabbitURL, cfg.EventLogDir, logger)
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("audit consumer stopped", slog.Any("err", err))
				}
			}()
		}
	}

	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL, nil)
	gen := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.OllamaTimeout)

	creds := service.NewCredentials(st.users, issuer, cfg.BcryptCost, events, logger)
	blacklist := service.NewBlacklist(st.denylist)
	suggestions := service.NewSuggestions(st.suggestions, st.favorites, events, logger)
	news := service.NewNews(st.news, suggestions, gen, logger)

	e := router.New(router.Deps{
		Log:         logger,
		Revocations: blacklist,
		Verifier:    issuer,
		RateLimit:   rateLimit,
		Cache:       cache,
		Auth:        handler.NewAuthHandler(creds, blacklist),
		News:        handler.NewNewsHandler(news, gen.URL(), gen.Model()),
		Suggestions: handler.NewSuggestionsHandler(suggestions),
		Checks:      checks,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env), slog.String("store", cfg.StoreDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// redisMiddleware builds the login rate limiter and the listing cache. Both
// are pass-through when rdb is nil.
func redisMiddleware(rdb *redis.Client, logger *slog.Logger) (rateLimit, cache echo.MiddlewareFunc, err error) {
	rl, err := config.LoadRateLimitConfig()
	if err != nil {
		return nil, nil, err
	}
	cc, err := config.LoadCacheConfig()
	if err != nil {
		return nil, nil, err
	}
	return middleware.NewTokenBucket(rl, rdb, logger), middleware.NewRedisCache(cc, rdb), nil
}
