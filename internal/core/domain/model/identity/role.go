// Package identity describes who is calling: a verified identity id plus the role it
// acts in. The Access Gate dispatches on Role once per operation.
package identity

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Role is the kind of account behind a credential.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleRider
	RoleThirdParty
)

var roleNames = map[Role]string{
	RoleCustomer:   "customer",
	RoleRider:      "rider",
	RoleThirdParty: "thirdparty",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRole reads the value stored in token claims.
func ParseRole(raw string) (Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for role, name := range roleNames {
		if name == raw {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", raw))
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a role", r))
	}
	return nil
}
