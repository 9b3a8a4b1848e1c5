package utils // package utils provides token issuing, verification and password hashing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMissingClaims is returned by Verify when a correctly signed token lacks
// one of the identity claims.
var ErrMissingClaims = errors.New("token is missing required claims")

// Claims is the payload of a session token. The registered claims carry the
// account id (sub), issuer, audience, issue and expiry times and a random
// token id that keeps two tokens minted in the same second distinct.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Org   string `json:"org"`
	jwt.RegisteredClaims
}

// Identity is the subset of an account that ends up in a token.
type Identity struct {
	ID       string
	FullName string
	Email    string
	Org      string
}

// AccessToken is a signed session token and its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// TokenIssuer mints and verifies HS256 session tokens. It is immutable after
// construction and safe for concurrent use.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer builds a TokenIssuer. now may be nil, in which case
// time.Now is used.
func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      now,
	}
}

// Issue signs a token for id valid from now until now+ttl.
func (ti *TokenIssuer) Issue(id Identity) (AccessToken, error) {
	iat := ti.now().UTC().Truncate(time.Second)
	exp := iat.Add(ti.ttl)
	claims := Claims{
		Name:  id.FullName,
		Email: id.Email,
		Org:   id.Org,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.ID,
			Issuer:    ti.issuer,
			Audience:  jwt.ClaimStrings{ti.audience},
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// Verify checks signature, algorithm, issuer, audience and expiry of raw and
// returns its claims. Every check must pass.
func (ti *TokenIssuer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return ti.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ti.issuer),
		jwt.WithAudience(ti.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(ti.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Name == "" || claims.Email == "" || claims.Org == "" {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

// UnverifiedExpiry decodes the exp claim of raw without checking its
// signature. ok is false for anything that is not a decodable JWT with an
// expiry.
func UnverifiedExpiry(raw string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time.UTC(), true
}
