package commands

import (
	"errors"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

// LoginCommand exchanges the credentials of an account of the given role for a token.
type LoginCommand struct {
	role        identity.Role
	credentials Credentials

	guard guard.ConstructorGuard
}

func NewLoginCommand(role identity.Role, email, password string) (LoginCommand, error) {
	credentials, errCredentials := newCredentials(email, password)
	if err := errors.Join(role.Validate(), errCredentials); err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{role: role, credentials: credentials, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Role() identity.Role {
	return c.role
}

func (c LoginCommand) Credentials() Credentials {
	return c.credentials
}
