package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRegisterRiderCommandIsNotConstructed = errors.New(
	"RegisterRiderCommand must be created via NewRegisterRiderCommand constructor",
)

// RegisterRiderCommand signs up a rider. The licence check is left to the rider
// aggregate so the rule lives in one place.
type RegisterRiderCommand struct {
	riderID     kernel.UUID
	name        string
	phone       string
	isLicensed  bool
	credentials Credentials

	guard guard.ConstructorGuard
}

func NewRegisterRiderCommand(
	riderID kernel.UUID,
	name, email, phone, password string,
	isLicensed bool,
) (RegisterRiderCommand, error) {
	var errName, errPhone error
	if isBlank(name) {
		errName = errs.NewValueIsRequiredError("name")
	}
	if isBlank(phone) {
		errPhone = errs.NewValueIsRequiredError("phone")
	}
	credentials, errCredentials := newCredentials(email, password)

	if err := errors.Join(riderID.Validate(), errName, errPhone, errCredentials); err != nil {
		return RegisterRiderCommand{}, err
	}

	return RegisterRiderCommand{
		riderID:     riderID,
		name:        name,
		phone:       phone,
		isLicensed:  isLicensed,
		credentials: credentials,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterRiderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterRiderCommandIsNotConstructed)
}

func (c RegisterRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c RegisterRiderCommand) Name() string {
	return c.name
}

func (c RegisterRiderCommand) Phone() string {
	return c.phone
}

func (c RegisterRiderCommand) IsLicensed() bool {
	return c.isLicensed
}

func (c RegisterRiderCommand) Credentials() Credentials {
	return c.credentials
}
