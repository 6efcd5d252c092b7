package rider

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the availability of a rider.
type Status int

const (
	Unknown Status = iota
	Available
	Busy
	OnBreak
)

var statusNames = map[Status]string{
	Available: "Available",
	Busy:      "Busy",
	OnBreak:   "OnBreak",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatus accepts "OnBreak", "on_break" and similar spellings case-insensitively.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	for status, name := range statusNames {
		if strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid rider status", raw))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid rider status", s))
	}
	return nil
}
