// Package errs defines the error taxonomy shared by the domain, the use cases,
// the access gate and the adapters of the logistics service.
//
// Every kind follows the same shape:
//   - a sentinel (ErrForbidden, ErrConflict, ...) for errors.Is classification
//   - a struct carrying the details and an optional Cause
//   - New...Error and New...ErrorWithCause constructors
//   - Error() and Unwrap(), where Unwrap returns the sentinel
//
// ConflictError additionally carries a ConflictReason so that callers can tell
// an order that is already taken apart from a rider that is no longer free.
// The HTTP adapter maps each kind onto exactly one status code.
package errs
