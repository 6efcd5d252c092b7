package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error in this package unwraps to exactly one of them,
// so callers classify failures with errors.Is.
var (
	ErrValueIsRequired = errors.New("value is required")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrObjectNotFound  = errors.New("object not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrPersistence     = errors.New("persistence failure")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ConflictReason distinguishes state-machine precondition violations.
type ConflictReason string

const (
	ReasonAlreadyInProgress ConflictReason = "AlreadyInProgress"
	ReasonAlreadyDelivered  ConflictReason = "AlreadyDelivered"
	ReasonAlreadyCancelled  ConflictReason = "AlreadyCancelled"
	ReasonRiderUnavailable  ConflictReason = "RiderUnavailable"
	ReasonRiderBusy         ConflictReason = "RiderBusy"
	ReasonTerminalState     ConflictReason = "TerminalState"
	ReasonInvalidTransition ConflictReason = "InvalidTransition"
	// ReasonStaleState is reported by conditional writes whose expected state no longer holds.
	ReasonStaleState       ConflictReason = "StaleState"
	ReasonDuplicateAccount ConflictReason = "DuplicateAccount"
)

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a present but malformed value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError reports that a referenced id is absent.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ForbiddenError reports a role or ownership mismatch.
type ForbiddenError struct {
	Reason string
	Cause  error
}

func NewForbiddenError(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

func NewForbiddenErrorWithCause(reason string, cause error) *ForbiddenError {
	return &ForbiddenError{Reason: reason, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrForbidden, e.Reason), e.Cause)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError reports a violated state-machine precondition.
type ConflictError struct {
	Reason ConflictReason
	Detail string
	Cause  error
}

func NewConflictError(reason ConflictReason, detail string) *ConflictError {
	return &ConflictError{Reason: reason, Detail: detail}
}

func NewConflictErrorWithCause(reason ConflictReason, detail string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Detail: detail, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s: %s", ErrConflict, e.Reason, e.Detail), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// PersistenceError reports an unavailable or timed-out store.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string) *PersistenceError {
	return &PersistenceError{Operation: operation}
}

func NewPersistenceErrorWithCause(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Operation), e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// UnauthenticatedError reports a missing, malformed or rejected credential.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason), e.Cause)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// IsValidation reports whether err is caused by missing or malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) || errors.Is(err, ErrValueIsInvalid)
}

// ConflictReasonOf extracts the reason of the first ConflictError in err's chain.
func ConflictReasonOf(err error) (ConflictReason, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.Reason, true
	}
	return "", false
}

// IsKnown reports whether err belongs to the taxonomy of this package.
func IsKnown(err error) bool {
	for _, sentinel := range []error{
		ErrValueIsRequired,
		ErrValueIsInvalid,
		ErrObjectNotFound,
		ErrForbidden,
		ErrConflict,
		ErrPersistence,
		ErrUnauthenticated,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// AsPersistence passes taxonomy errors through and wraps everything else,
// including context deadline errors, as a PersistenceError for operation.
func AsPersistence(operation string, err error) error {
	if err == nil || IsKnown(err) {
		return err
	}
	return NewPersistenceErrorWithCause(operation, err)
}
