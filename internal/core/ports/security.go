package ports

import (
	"time"

	"logistics/internal/core/domain/model/identity"
)

// PasswordHasher turns passwords into storable hashes and checks them.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash.
	Verify(plain, hash string) bool
}

// TokenIssuer signs a credential for a principal and reports when it expires.
type TokenIssuer interface {
	Issue(principal identity.Principal) (token string, expiresAt time.Time, err error)
}

// TokenVerifier resolves a bearer credential to its principal. Any malformed,
// expired or forged token yields an UnauthenticatedError.
type TokenVerifier interface {
	Verify(token string) (identity.Principal, error)
}
