package security

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 72 * time.Hour

const issuer = "logistics"

var errInvalidToken = errs.NewUnauthenticatedError("invalid or expired token")

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokens signs HS256 tokens whose subject is the identity id and whose role claim
// names the account kind. It implements ports.TokenIssuer and ports.TokenVerifier.
type JWTTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*JWTTokens)

// WithTTL overrides DefaultTokenTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) TokenOption {
	return func(t *JWTTokens) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) TokenOption {
	return func(t *JWTTokens) {
		if now != nil {
			t.now = now
		}
	}
}

func NewJWTTokens(secret string, opts ...TokenOption) (*JWTTokens, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}

	t := &JWTTokens{secret: []byte(secret), ttl: DefaultTokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *JWTTokens) Issue(principal identity.Principal) (string, time.Time, error) {
	if err := principal.Validate(); err != nil {
		return "", time.Time{}, err
	}

	issuedAt := t.now().UTC()
	expiresAt := issuedAt.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: principal.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   principal.ID().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify accepts only unexpired HS256 tokens signed with this secret.
func (t *JWTTokens) Verify(raw string) (identity.Principal, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return identity.Principal{}, errs.NewUnauthenticatedErrorWithCause("invalid or expired token", err)
	}

	id, err := kernel.UUIDFromString(parsed.Subject)
	if err != nil {
		return identity.Principal{}, errInvalidToken
	}
	role, err := identity.ParseRole(parsed.Role)
	if err != nil {
		return identity.Principal{}, errInvalidToken
	}
	return identity.NewPrincipal(id, role)
}
