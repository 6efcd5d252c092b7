package kernel

import (
	"strings"

	"logistics/internal/pkg/errs"
)

// Address is a free-form postal address. Surrounding whitespace is trimmed and a blank
// address is rejected, so a constructed Address is never empty.
type Address struct {
	value string
}

// NewAddress trims raw and validates it. paramName names the offending field in the
// returned validation error.
func NewAddress(paramName, raw string) (Address, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError(paramName)
	}
	return Address{value: value}, nil
}

func (a Address) String() string {
	return a.value
}

func (a Address) IsEmpty() bool {
	return a.value == ""
}

func (a Address) Validate() error {
	if a.IsEmpty() {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}
