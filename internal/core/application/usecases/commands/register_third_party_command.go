package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/thirdparty"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrRegisterThirdPartyCommandIsNotConstructed = errors.New(
	"RegisterThirdPartyCommand must be created via NewRegisterThirdPartyCommand constructor",
)

// RegisterThirdPartyCommand signs up a logistics company. The contact e-mail is the
// login. Address, contact person and pricing are optional.
type RegisterThirdPartyCommand struct {
	thirdPartyID kernel.UUID
	profile      thirdparty.Profile
	credentials  Credentials

	guard guard.ConstructorGuard
}

func NewRegisterThirdPartyCommand(
	thirdPartyID kernel.UUID,
	name, contactEmail, contactPhone, password string,
	address, contactPerson, pricing string,
) (RegisterThirdPartyCommand, error) {
	var errName, errPhone error
	if isBlank(name) {
		errName = errs.NewValueIsRequiredError("name")
	}
	if isBlank(contactPhone) {
		errPhone = errs.NewValueIsRequiredError("contactPhone")
	}
	parsedPricing, errPricing := thirdparty.ParsePricing(pricing)
	credentials, errCredentials := newCredentials(contactEmail, password)

	if err := errors.Join(thirdPartyID.Validate(), errName, errPhone, errPricing, errCredentials); err != nil {
		return RegisterThirdPartyCommand{}, err
	}

	return RegisterThirdPartyCommand{
		thirdPartyID: thirdPartyID,
		profile: thirdparty.Profile{
			Name:          name,
			Address:       address,
			ContactPerson: contactPerson,
			ContactEmail:  credentials.Email(),
			ContactPhone:  contactPhone,
			Pricing:       parsedPricing,
		},
		credentials: credentials,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterThirdPartyCommand) Validate() error {
	return c.guard.Validate(ErrRegisterThirdPartyCommandIsNotConstructed)
}

func (c RegisterThirdPartyCommand) ThirdPartyID() kernel.UUID {
	return c.thirdPartyID
}

func (c RegisterThirdPartyCommand) Profile() thirdparty.Profile {
	return c.profile
}

func (c RegisterThirdPartyCommand) Credentials() Credentials {
	return c.credentials
}
