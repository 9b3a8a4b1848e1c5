package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/repository/memrepo"
	"github.com/invisio/invisio-backend/internal/utils"
)

var errStoreDown = errors.New("store down")

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func testIssuer() *utils.TokenIssuer {
	return utils.NewTokenIssuer("test-secret", "invisio", "invisio-clients", time.Hour, nil)
}

type published struct {
	queue string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, queue string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{queue: queue, event: event})
	return nil
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, string, any) error { return errors.New("broker down") }

type brokenUsers struct{}

func (brokenUsers) FindByEmail(context.Context, string) (model.Account, error) {
	return model.Account{}, errStoreDown
}
func (brokenUsers) Create(context.Context, *model.Account) error { return errStoreDown }

type brokenDenylist struct{}

func (brokenDenylist) Insert(context.Context, model.DenylistEntry) error { return errStoreDown }
func (brokenDenylist) Exists(context.Context, string) (bool, error)    { return false, errStoreDown }

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func newCredentials(users UserStore, pub EventPublisher) *Credentials {
	return NewCredentials(users, testIssuer(), bcrypt.MinCost, pub, discardLogger())
}

func newSuggestions(pub EventPublisher) (*Suggestions, *memrepo.Suggestions, *memrepo.Favorites) {
	store, favs := memrepo.NewSuggestions(), memrepo.NewFavorites()
	return NewSuggestions(store, favs, pub, discardLogger()), store, favs
}
