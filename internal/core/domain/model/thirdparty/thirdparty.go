// Package thirdparty holds the ThirdParty aggregate: an external logistics company
// with read-only visibility into the orders routed to it.
package thirdparty

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

const (
	DefaultAddress       = "My Company Address"
	DefaultContactPerson = "My Company Contact"
)

// ErrThirdPartyIsNotConstructed is returned for a ThirdParty that bypassed its constructors.
var ErrThirdPartyIsNotConstructed = errors.New("ThirdParty must be created via NewThirdParty or RestoreThirdParty constructor")

type ThirdParty struct {
	id            kernel.UUID
	name          string
	address       string
	contactPerson string
	contactEmail  kernel.Email
	contactPhone  string
	passwordHash  string
	pricing       Pricing
	createdAt     time.Time
	guard         guard.ConstructorGuard
}

// Profile carries the descriptive fields of a logistics company. Blank Address and
// ContactPerson fall back to the defaults, a blank Pricing to PricingFlat.
type Profile struct {
	Name          string
	Address       string
	ContactPerson string
	ContactEmail  kernel.Email
	ContactPhone  string
	Pricing       Pricing
}

// NewThirdParty signs a logistics company up.
func NewThirdParty(id kernel.UUID, profile Profile, passwordHash string, now time.Time) (*ThirdParty, error) {
	return RestoreThirdParty(id, profile, passwordHash, now.UTC())
}

// RestoreThirdParty rehydrates a logistics company from storage.
func RestoreThirdParty(id kernel.UUID, profile Profile, passwordHash string, createdAt time.Time) (*ThirdParty, error) {
	tp := &ThirdParty{
		id:            id,
		name:          strings.TrimSpace(profile.Name),
		address:       orDefault(profile.Address, DefaultAddress),
		contactPerson: orDefault(profile.ContactPerson, DefaultContactPerson),
		contactEmail:  profile.ContactEmail,
		contactPhone:  strings.TrimSpace(profile.ContactPhone),
		passwordHash:  passwordHash,
		pricing:       profile.Pricing,
		createdAt:     createdAt,
		guard:         guard.NewConstructorGuard(),
	}
	if tp.pricing == "" {
		tp.pricing = PricingFlat
	}

	var errName, errPhone, errHash error
	if tp.name == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if tp.contactPhone == "" {
		errPhone = errs.NewValueIsRequiredError("contactPhone")
	}
	if passwordHash == "" {
		errHash = errs.NewValueIsRequiredError("passwordHash")
	}
	_, errPricing := ParsePricing(string(tp.pricing))

	if err := errors.Join(id.Validate(), errName, profile.ContactEmail.Validate(), errPhone, errHash, errPricing); err != nil {
		return nil, err
	}
	return tp, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func (tp *ThirdParty) Validate() error {
	if tp == nil {
		return ErrThirdPartyIsNotConstructed
	}
	return tp.guard.Validate(ErrThirdPartyIsNotConstructed)
}

func (tp *ThirdParty) ID() kernel.UUID {
	return tp.id
}

func (tp *ThirdParty) Name() string {
	return tp.name
}

func (tp *ThirdParty) Address() string {
	return tp.address
}

func (tp *ThirdParty) ContactPerson() string {
	return tp.contactPerson
}

func (tp *ThirdParty) ContactEmail() kernel.Email {
	return tp.contactEmail
}

func (tp *ThirdParty) ContactPhone() string {
	return tp.contactPhone
}

func (tp *ThirdParty) PasswordHash() string {
	return tp.passwordHash
}

func (tp *ThirdParty) Pricing() Pricing {
	return tp.pricing
}

func (tp *ThirdParty) CreatedAt() time.Time {
	return tp.createdAt
}
