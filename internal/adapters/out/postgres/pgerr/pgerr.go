// Package pgerr maps PostgreSQL driver errors onto the error taxonomy.
package pgerr

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Insert wraps the result of an account insert: a unique violation becomes
// ConflictError(DuplicateAccount), anything else a PersistenceError.
func Insert(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause(errs.ReasonDuplicateAccount, "an account with this e-mail already exists", err)
	}
	return errs.AsPersistence(operation, err)
}
