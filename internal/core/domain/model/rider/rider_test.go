package rider_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signedUpAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newRider(t *testing.T) *rider.Rider {
	t.Helper()
	email, err := kernel.NewEmail("ann@example.com")
	require.NoError(t, err)
	r, err := rider.NewRider(kernel.NewUUID(), "Ann", email, "+10000000", "hash", true, signedUpAt)
	require.NoError(t, err)
	return r
}

func pickup(t *testing.T) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("pickupAddress", "A St")
	require.NoError(t, err)
	return a
}

func TestNewRider(t *testing.T) {
	t.Run("should create active available rider", func(t *testing.T) {
		r := newRider(t)

		require.NoError(t, r.Validate())
		assert.Equal(t, "Ann", r.Name())
		assert.Equal(t, "ann@example.com", r.Email().String())
		assert.True(t, r.IsActive())
		assert.True(t, r.IsLicensed())
		assert.Equal(t, rider.Available, r.Status())
		assert.Nil(t, r.CurrentOrderID())
	})

	t.Run("should reject unlicensed rider", func(t *testing.T) {
		email, _ := kernel.NewEmail("bob@example.com")

		r, err := rider.NewRider(kernel.NewUUID(), "Bob", email, "+1", "hash", false, signedUpAt)

		assert.Nil(t, r)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "isLicensed")
	})

	t.Run("should join missing fields", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), " ", kernel.Email{}, "", "", true, signedUpAt)

		require.Error(t, err)
		for _, field := range []string{"name", "email", "phone", "passwordHash"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestRider_TakeOrder(t *testing.T) {
	t.Run("available rider becomes busy at pickup", func(t *testing.T) {
		r := newRider(t)
		orderID := kernel.NewUUID()

		require.NoError(t, r.TakeOrder(orderID, pickup(t), signedUpAt.Add(time.Minute)))

		assert.Equal(t, rider.Busy, r.Status())
		assert.True(t, r.IsCarrying(orderID))
		assert.Equal(t, "A St", r.CurrentLocation())
		assert.Equal(t, signedUpAt.Add(time.Minute), r.UpdatedAt())
	})

	t.Run("busy rider is unavailable", func(t *testing.T) {
		r := newRider(t)
		first := kernel.NewUUID()
		require.NoError(t, r.TakeOrder(first, pickup(t), signedUpAt))

		err := r.TakeOrder(kernel.NewUUID(), pickup(t), signedUpAt)

		reason, ok := errs.ConflictReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ReasonRiderUnavailable, reason)
		assert.True(t, r.IsCarrying(first))
	})

	t.Run("rider on break is unavailable", func(t *testing.T) {
		r := newRider(t)
		require.NoError(t, r.ChangeAvailability(rider.OnBreak, signedUpAt))

		reason, _ := errs.ConflictReasonOf(r.TakeOrder(kernel.NewUUID(), pickup(t), signedUpAt))

		assert.Equal(t, errs.ReasonRiderUnavailable, reason)
	})

	t.Run("inactive rider is forbidden before availability is checked", func(t *testing.T) {
		email, _ := kernel.NewEmail("c@example.com")
		orderID := kernel.NewUUID()
		r, err := rider.RestoreRider(kernel.NewUUID(), "C", email, "+1", "hash", false, true,
			rider.Busy, &orderID, "", signedUpAt, signedUpAt)
		require.NoError(t, err)

		require.ErrorIs(t, r.TakeOrder(kernel.NewUUID(), pickup(t), signedUpAt), errs.ErrForbidden)
	})
}

func TestRider_Release(t *testing.T) {
	r := newRider(t)
	orderID := kernel.NewUUID()
	require.NoError(t, r.TakeOrder(orderID, pickup(t), signedUpAt))

	assert.False(t, r.Release(kernel.NewUUID(), signedUpAt))
	assert.Equal(t, rider.Busy, r.Status())

	assert.True(t, r.Release(orderID, signedUpAt))
	assert.Equal(t, rider.Available, r.Status())
	assert.Nil(t, r.CurrentOrderID())
	assert.Equal(t, "A St", r.CurrentLocation())

	assert.False(t, r.Release(orderID, signedUpAt))
}

func TestRider_ReleaseStale(t *testing.T) {
	r := newRider(t)
	assert.False(t, r.ReleaseStale(signedUpAt))

	require.NoError(t, r.TakeOrder(kernel.NewUUID(), pickup(t), signedUpAt))
	assert.True(t, r.ReleaseStale(signedUpAt))
	assert.Equal(t, rider.Available, r.Status())
}

func TestRider_ChangeAvailability(t *testing.T) {
	t.Run("toggles break", func(t *testing.T) {
		r := newRider(t)

		require.NoError(t, r.ChangeAvailability(rider.OnBreak, signedUpAt))
		assert.Equal(t, rider.OnBreak, r.Status())
		require.NoError(t, r.ChangeAvailability(rider.Available, signedUpAt))
		assert.Equal(t, rider.Available, r.Status())
	})

	t.Run("busy cannot be set directly", func(t *testing.T) {
		r := newRider(t)

		require.ErrorIs(t, r.ChangeAvailability(rider.Busy, signedUpAt), errs.ErrValueIsInvalid)
	})

	t.Run("busy rider keeps its order", func(t *testing.T) {
		r := newRider(t)
		require.NoError(t, r.TakeOrder(kernel.NewUUID(), pickup(t), signedUpAt))

		reason, _ := errs.ConflictReasonOf(r.ChangeAvailability(rider.OnBreak, signedUpAt))

		assert.Equal(t, errs.ReasonRiderBusy, reason)
		assert.Equal(t, rider.Busy, r.Status())
	})
}

func TestRestoreRider(t *testing.T) {
	email, _ := kernel.NewEmail("d@example.com")
	orderID := kernel.NewUUID()

	t.Run("busy without order is rejected", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "D", email, "+1", "hash", true, true,
			rider.Busy, nil, "", signedUpAt, signedUpAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("available with order is rejected", func(t *testing.T) {
		_, err := rider.RestoreRider(kernel.NewUUID(), "D", email, "+1", "hash", true, true,
			rider.Available, &orderID, "", signedUpAt, signedUpAt)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r rider.Rider

		assert.Equal(t, rider.ErrRiderIsNotConstructed, r.Validate())
	})
}

func TestParseStatus(t *testing.T) {
	for raw, expected := range map[string]rider.Status{
		"available": rider.Available,
		"BUSY":      rider.Busy,
		"on_break":  rider.OnBreak,
		"OnBreak":   rider.OnBreak,
	} {
		status, err := rider.ParseStatus(raw)

		require.NoError(t, err)
		assert.Equal(t, expected, status)
	}

	_, err := rider.ParseStatus("sleeping")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
