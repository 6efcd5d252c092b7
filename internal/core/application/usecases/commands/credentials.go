package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Credentials are the login fields shared by every account kind.
type Credentials struct {
	email    kernel.Email
	password string
}

func newCredentials(email, password string) (Credentials, error) {
	parsed, errEmail := kernel.NewEmail(email)

	var errPassword error
	switch {
	case password == "":
		errPassword = errs.NewValueIsRequiredError("password")
	case len(password) > maxPasswordBytes:
		errPassword = errs.NewValueIsInvalidErrorWithCause(
			"password", fmt.Errorf("must be at most %d bytes", maxPasswordBytes),
		)
	}

	if err := errors.Join(errEmail, errPassword); err != nil {
		return Credentials{}, err
	}
	return Credentials{email: parsed, password: password}, nil
}

func (c Credentials) Email() kernel.Email {
	return c.email
}

func (c Credentials) Password() string {
	return c.password
}

// ensureEmailFree turns a successful lookup into ConflictError(DuplicateAccount). The
// repositories also reject duplicates on Add; this check only yields the clearer error.
func ensureEmailFree[T any](
	ctx context.Context,
	lookup func(context.Context, kernel.Email) (T, error),
	email kernel.Email,
) error {
	_, err := lookup(ctx, email)
	switch {
	case err == nil:
		return errs.NewConflictError(errs.ReasonDuplicateAccount, fmt.Sprintf("%s is already registered", email))
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	default:
		return errs.AsPersistence("lookup account", err)
	}
}

func hashPassword(hasher ports.PasswordHasher, plain string) (string, error) {
	hash, err := hasher.Hash(plain)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("password", err)
	}
	return hash, nil
}
