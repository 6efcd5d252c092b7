package order

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──accept──> InProgress ──┬──> Delivered
//	   │                             └──> Cancelled
//	   └──────────cancel──────────────────> Cancelled
//
// Delivered and Cancelled are terminal. Only acceptance moves an order out of Pending
// into InProgress, and nothing moves an order back into Pending.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// Pending orders wait for a rider.
	Pending
	// InProgress orders are carried by their bound rider.
	InProgress
	// Delivered is terminal.
	Delivered
	// Cancelled is terminal.
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "Pending",
	InProgress: "InProgress",
	Delivered:  "Delivered",
	Cancelled:  "Cancelled",
}

// String returns the persisted name of the status, or "Unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// ParseStatus accepts the persisted names ("InProgress") as well as the upper snake
// case spelling used by older clients ("IN_PROGRESS"), case-insensitively.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	for status, name := range statusNames {
		if strings.ToLower(name) == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", raw))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAccept checks that an order in status s can be accepted by a rider.
// Each non-Pending status yields its own conflict reason.
func (s Status) ValidateAccept() error {
	switch s {
	case Pending:
		return nil
	case InProgress:
		return errs.NewConflictError(errs.ReasonAlreadyInProgress, "order is already in progress")
	case Delivered:
		return errs.NewConflictError(errs.ReasonAlreadyDelivered, "order is already delivered")
	case Cancelled:
		return errs.NewConflictError(errs.ReasonAlreadyCancelled, "order is already cancelled")
	default:
		return s.Validate()
	}
}

// ValidateCanHaveRider checks the status/rider invariant of a stored order:
// Pending orders have no rider, InProgress and Delivered orders have one, and
// Cancelled orders may have one depending on whether they were accepted before.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause("riderID", fmt.Errorf("%s order cannot have a rider", s))
	}
	if !hasRider && (s == InProgress || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("riderID", fmt.Errorf("%s order must have a rider", s))
	}
	return nil
}

// TransitionTo returns the status an order moves to when its rider requests target.
//
// Returns:
//   - (InProgress, nil) for InProgress -> InProgress, a no-op
//   - (target, nil) for InProgress -> Delivered and InProgress -> Cancelled
//   - ConflictError(TerminalState) when s is Delivered or Cancelled
//   - ConflictError(InvalidTransition) for every other pair, including any move back into Pending
//   - ValueIsInvalidError when target is not a valid status
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewConflictError(errs.ReasonTerminalState, fmt.Sprintf("order is already %s", s))
	}
	if s == InProgress && target != Pending {
		return target, nil
	}
	return Unknown, errs.NewConflictError(errs.ReasonInvalidTransition, fmt.Sprintf("cannot move order from %s to %s", s, target))
}

// Cancel returns the status of an order its customer cancels. Only Pending orders qualify.
func (s Status) Cancel() (Status, error) {
	switch {
	case s == Pending:
		return Cancelled, nil
	case s == InProgress:
		return Unknown, errs.NewConflictError(errs.ReasonAlreadyInProgress, "order was already accepted by a rider")
	case s.IsTerminal():
		return Unknown, errs.NewConflictError(errs.ReasonTerminalState, fmt.Sprintf("order is already %s", s))
	default:
		return Unknown, s.Validate()
	}
}
