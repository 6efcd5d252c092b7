// Package access is the gate in front of the lifecycle engine and the order reads.
// It admits a call only when the verified principal acts in the required role and,
// for self-service operations, owns the addressed resource. The engine behind it
// never looks at roles.
package access

import (
	"fmt"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrNotAuthenticated is returned for a principal that was never verified.
var ErrNotAuthenticated = errs.NewUnauthenticatedError("missing credentials")

// Rule is the single parameterized check of the gate: a required role plus an
// optional ownership predicate.
type Rule struct {
	Role identity.Role
	Owns func(identity.Principal) bool
}

// RequireRole admits any principal acting in role.
func RequireRole(role identity.Role) Rule {
	return Rule{Role: role}
}

// RequireOwner admits a principal acting in role whose id is ownerID.
func RequireOwner(role identity.Role, ownerID kernel.UUID) Rule {
	return Rule{
		Role: role,
		Owns: func(p identity.Principal) bool {
			return p.ID().IsEqual(ownerID)
		},
	}
}

// Check returns UnauthenticatedError for an unverified principal and ForbiddenError
// when the role or the ownership does not match.
func (r Rule) Check(p identity.Principal) error {
	if err := p.Validate(); err != nil {
		return ErrNotAuthenticated
	}
	if !p.Is(r.Role) {
		return errs.NewForbiddenError(fmt.Sprintf("requires the %s role", r.Role))
	}
	if r.Owns != nil && !r.Owns(p) {
		return errs.NewForbiddenError(fmt.Sprintf("%s may only act on its own resources", r.Role))
	}
	return nil
}
