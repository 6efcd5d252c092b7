package identity

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

// ErrPrincipalIsNotConstructed marks a Principal that did not come from NewPrincipal,
// which is how an unauthenticated request looks to the gate.
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is the verified caller of an operation.
type Principal struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Principal{}, err
	}
	return Principal{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (p Principal) Validate() error {
	return p.guard.Validate(ErrPrincipalIsNotConstructed)
}

func (p Principal) ID() kernel.UUID {
	return p.id
}

func (p Principal) Role() Role {
	return p.role
}

// Is reports whether p acts in role.
func (p Principal) Is(role Role) bool {
	return p.Validate() == nil && p.role == role
}
