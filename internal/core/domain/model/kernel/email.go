package kernel

import (
	"net/mail"
	"strings"

	"logistics/internal/pkg/errs"
)

// Email is an account e-mail address normalized to lower case without a display name.
type Email struct {
	value string
}

// NewEmail trims and lower-cases raw, then checks it parses as a bare RFC 5322 address.
func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	parsed, err := mail.ParseAddress(value)
	if err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	if parsed.Address != value {
		return Email{}, errs.NewValueIsInvalidError("email")
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) Validate() error {
	if e.value == "" {
		return errs.NewValueIsRequiredError("email")
	}
	return nil
}
