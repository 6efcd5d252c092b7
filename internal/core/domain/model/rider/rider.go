package rider

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrRiderIsNotConstructed is returned for a Rider that bypassed NewRider and RestoreRider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructor")
	// ErrRiderIsNotLicensed rejects sign-ups without a valid riding licence.
	ErrRiderIsNotLicensed = errs.NewValueIsInvalidErrorWithCause("isLicensed", errors.New("rider must hold a valid licence"))
)

// Rider is an independent courier who carries at most one order at a time.
//
// Business rules:
//   - a rider is Busy exactly when it carries a current order
//   - only an active, Available rider may take an order
//   - taking an order moves the rider's location to the pickup address
//   - Busy is entered and left only through TakeOrder and Release, never set directly
//
// Example usage:
//
//	r, err := rider.NewRider(kernel.NewUUID(), "Ann", email, "+100", hash, true, time.Now())
//	if err != nil {
//	    return err
//	}
//	err = r.TakeOrder(orderID, pickup, time.Now())
type Rider struct {
	id              kernel.UUID
	name            string
	email           kernel.Email
	phone           string
	passwordHash    string
	isActive        bool
	isLicensed      bool
	status          Status
	currentOrderID  *kernel.UUID
	currentLocation string
	createdAt       time.Time
	updatedAt       time.Time
	guard           guard.ConstructorGuard
}

// NewRider signs a rider up. New riders are active and Available.
//
// Parameters:
//   - id: identifier of the rider
//   - name: display name, must not be blank
//   - email: normalized account e-mail
//   - phone: contact phone, must not be blank
//   - passwordHash: the already hashed password
//   - isLicensed: must be true
//   - now: sign-up time
//
// Returns the rider or the joined validation errors.
func NewRider(
	id kernel.UUID,
	name string,
	email kernel.Email,
	phone string,
	passwordHash string,
	isLicensed bool,
	now time.Time,
) (*Rider, error) {
	r := &Rider{
		isActive:  true,
		status:    Available,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var licence error
	if !isLicensed {
		licence = ErrRiderIsNotLicensed
	}
	r.isLicensed = isLicensed

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setEmail(email),
		r.setPhone(phone),
		r.setPasswordHash(passwordHash),
		licence,
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider rehydrates a rider from storage and checks that Busy and the current
// order agree.
func RestoreRider(
	id kernel.UUID,
	name string,
	email kernel.Email,
	phone string,
	passwordHash string,
	isActive bool,
	isLicensed bool,
	status Status,
	currentOrderID *kernel.UUID,
	currentLocation string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Rider, error) {
	r := &Rider{
		isActive:        isActive,
		isLicensed:      isLicensed,
		currentLocation: currentLocation,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setEmail(email),
		r.setPhone(phone),
		r.setPasswordHash(passwordHash),
		r.setStatus(status, currentOrderID),
	); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) Email() kernel.Email {
	return r.email
}

func (r *Rider) Phone() string {
	return r.phone
}

func (r *Rider) PasswordHash() string {
	return r.passwordHash
}

func (r *Rider) IsActive() bool {
	return r.isActive
}

func (r *Rider) IsLicensed() bool {
	return r.isLicensed
}

func (r *Rider) Status() Status {
	return r.status
}

func (r *Rider) CurrentLocation() string {
	return r.currentLocation
}

func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Rider) UpdatedAt() time.Time {
	return r.updatedAt
}

// CurrentOrderID returns a copy of the carried order's id, or nil.
func (r *Rider) CurrentOrderID() *kernel.UUID {
	if r.currentOrderID == nil {
		return nil
	}
	id := *r.currentOrderID
	return &id
}

// IsCarrying reports whether orderID is the rider's current order.
func (r *Rider) IsCarrying(orderID kernel.UUID) bool {
	return r.currentOrderID != nil && r.currentOrderID.IsEqual(orderID)
}

// CanTakeOrder checks the rider side of an acceptance.
//
// Returns:
//   - nil when the rider is active and Available
//   - ForbiddenError when the rider is inactive, whatever its status
//   - ConflictError(RiderUnavailable) when the rider is Busy or OnBreak
func (r *Rider) CanTakeOrder() error {
	if !r.isActive {
		return errs.NewForbiddenError("rider is inactive")
	}
	if r.status != Available {
		return errs.NewConflictError(errs.ReasonRiderUnavailable, fmt.Sprintf("rider is %s", r.status))
	}
	return nil
}

// TakeOrder makes the rider Busy with orderID and moves it to the pickup address.
func (r *Rider) TakeOrder(orderID kernel.UUID, pickup kernel.Address, now time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := r.CanTakeOrder(); err != nil {
		return err
	}

	id := orderID
	r.status = Busy
	r.currentOrderID = &id
	r.currentLocation = pickup.String()
	r.touch(now)
	return nil
}

// Release frees a rider that carries orderID. It reports false, and changes nothing,
// when the rider carries another order or none.
func (r *Rider) Release(orderID kernel.UUID, now time.Time) bool {
	if r.status != Busy || !r.IsCarrying(orderID) {
		return false
	}
	r.status = Available
	r.currentOrderID = nil
	r.touch(now)
	return true
}

// ReleaseStale frees a Busy rider whatever its current order. It is used to repair
// riders whose order no longer holds them.
func (r *Rider) ReleaseStale(now time.Time) bool {
	if r.status != Busy {
		return false
	}
	r.status = Available
	r.currentOrderID = nil
	r.touch(now)
	return true
}

// ChangeAvailability toggles between Available and OnBreak.
//
// Returns:
//   - ValueIsInvalidError when target is Busy or invalid
//   - ConflictError(RiderBusy) while the rider carries an order
//   - nil, leaving the rider untouched, when target is the current status
func (r *Rider) ChangeAvailability(target Status, now time.Time) error {
	if target != Available && target != OnBreak {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s cannot be set directly", target))
	}
	if r.status == Busy {
		return errs.NewConflictError(errs.ReasonRiderBusy, "rider is carrying an order")
	}
	if r.status == target {
		return nil
	}
	r.status = target
	r.touch(now)
	return nil
}

func (r *Rider) touch(now time.Time) {
	now = now.UTC()
	if now.Before(r.updatedAt) {
		now = r.updatedAt
	}
	r.updatedAt = now
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Rider) setEmail(email kernel.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}
	r.email = email
	return nil
}

func (r *Rider) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	r.phone = phone
	return nil
}

func (r *Rider) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	r.passwordHash = hash
	return nil
}

func (r *Rider) setStatus(status Status, currentOrderID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	busy := status == Busy
	if busy != (currentOrderID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("currentOrderID",
			fmt.Errorf("%s rider with current order set=%t", status, currentOrderID != nil))
	}
	if currentOrderID != nil {
		if err := currentOrderID.Validate(); err != nil {
			return err
		}
		id := *currentOrderID
		r.currentOrderID = &id
	}
	r.status = status
	return nil
}
