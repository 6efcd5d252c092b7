package identity_test

import (
	"testing"

	"logistics/internal/core/domain/model/identity"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, role := range []identity.Role{identity.RoleCustomer, identity.RoleRider, identity.RoleThirdParty} {
		parsed, err := identity.ParseRole(role.String())

		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := identity.ParseRole("admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPrincipal(t *testing.T) {
	id := kernel.NewUUID()

	p, err := identity.NewPrincipal(id, identity.RoleRider)

	require.NoError(t, err)
	assert.True(t, p.ID().IsEqual(id))
	assert.True(t, p.Is(identity.RoleRider))
	assert.False(t, p.Is(identity.RoleCustomer))

	_, err = identity.NewPrincipal(kernel.UUID{}, identity.RoleUnknown)
	require.Error(t, err)

	var anonymous identity.Principal
	assert.Equal(t, identity.ErrPrincipalIsNotConstructed, anonymous.Validate())
	assert.False(t, anonymous.Is(identity.RoleUnknown))
}
