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
	"github.com/invisio/invisio-backend/internal/utils"
)

// Credentials registers accounts and exchanges email/password for session
// tokens. It keeps no state of its own.
type Credentials struct {
	users  UserStore
	tokens *utils.TokenIssuer
	cost   int
	events EventPublisher
	log    *slog.Logger

	// dummyHash is compared against when the email is unknown so that both
	// login failures cost one bcrypt verification.
	dummyHash string
}

func NewCredentials(users UserStore, tokens *utils.TokenIssuer, bcryptCost int, events EventPublisher, log *slog.Logger) *Credentials {
	dummy, err := utils.HashPassword("invisio-unknown-account", bcryptCost)
	if err != nil {
		log.Error("hash dummy password", slog.Any("err", err))
	}
	return &Credentials{users: users, tokens: tokens, cost: bcryptCost, events: events, log: log, dummyHash: dummy}
}

// Register creates an account. The email check and the insert are two
// separate store calls, so concurrent signups with one email may both win.
func (s *Credentials) Register(ctx context.Context, fullName, email, password, orgName string) (model.Account, error) {
	const op = "service.Credentials.Register"

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return model.Account{}, ErrAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return model.Account{}, fmt.Errorf("%s: lookup: %w", op, err)
	}

	hash, err := utils.HashPassword(password, s.cost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return model.Account{}, ErrPasswordTooLong
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("%s: hash: %w", op, err)
	}
	acc := model.Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CompanyName:  orgName,
	}
	if err := s.users.Create(ctx, &acc); err != nil {
		return model.Account{}, fmt.Errorf("%s: insert: %w", op, err)
	}

	s.log.Info("account registered", slog.String("user_id", acc.ID))
	_ = s.events.Publish(ctx, queue.UserRegisteredQueue, queue.UserRegisteredEvent{
		UserID:       acc.ID,
		Email:        acc.Email,
		FullName:     acc.FullName,
		CompanyName:  acc.CompanyName,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return acc, nil
}

// Authenticate verifies the password and mints a session token. Unknown
// email and wrong password produce the same ErrInvalidCredentials.
func (s *Credentials) Authenticate(ctx context.Context, email, password string) (utils.AccessToken, model.Account, error) {
	const op = "service.Credentials.Authenticate"

	acc, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		_ = utils.VerifyPassword(s.dummyHash, password)
		return utils.AccessToken{}, model.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return utils.AccessToken{}, model.Account{}, fmt.Errorf("%s: lookup: %w", op, err)
	}
	if !utils.VerifyPassword(acc.PasswordHash, password) {
		return utils.AccessToken{}, model.Account{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(utils.Identity{
		ID:       acc.ID,
		FullName: acc.FullName,
		Email:    acc.Email,
		Org:      acc.CompanyName,
	})
	if err != nil {
		return utils.AccessToken{}, model.Account{}, fmt.Errorf("%s: issue: %w", op, err)
	}
	return tok, acc, nil
}
