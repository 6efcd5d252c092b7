package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "InProgress", order.InProgress.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Cancelled", order.Cancelled.String())
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	t.Run("accepts persisted and legacy spellings", func(t *testing.T) {
		cases := map[string]order.Status{
			"Pending":     order.Pending,
			"PENDING":     order.Pending,
			"InProgress":  order.InProgress,
			"IN_PROGRESS": order.InProgress,
			"in_progress": order.InProgress,
			" delivered ": order.Delivered,
			"CANCELLED":   order.Cancelled,
		}
		for raw, expected := range cases {
			status, err := order.ParseStatus(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, expected, status, raw)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, raw := range []string{"", "Unknown", "shipped"} {
			_, err := order.ParseStatus(raw)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, raw)
		}
	})
}

func TestStatus_ValidateAccept(t *testing.T) {
	require.NoError(t, order.Pending.ValidateAccept())

	cases := map[order.Status]errs.ConflictReason{
		order.InProgress: errs.ReasonAlreadyInProgress,
		order.Delivered:  errs.ReasonAlreadyDelivered,
		order.Cancelled:  errs.ReasonAlreadyCancelled,
	}
	for status, expected := range cases {
		reason, ok := errs.ConflictReasonOf(status.ValidateAccept())

		require.True(t, ok, status.String())
		assert.Equal(t, expected, reason)
	}

	require.ErrorIs(t, order.Unknown.ValidateAccept(), errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		for _, target := range []order.Status{order.InProgress, order.Delivered, order.Cancelled} {
			next, err := order.InProgress.TransitionTo(target)

			require.NoError(t, err)
			assert.Equal(t, target, next)
		}
	})

	t.Run("terminal states reject every target", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			for _, target := range []order.Status{order.Pending, order.InProgress, order.Delivered, order.Cancelled} {
				_, err := from.TransitionTo(target)

				reason, ok := errs.ConflictReasonOf(err)
				require.True(t, ok)
				assert.Equal(t, errs.ReasonTerminalState, reason)
			}
		}
	})

	t.Run("nothing returns to pending", func(t *testing.T) {
		_, err := order.InProgress.TransitionTo(order.Pending)

		reason, ok := errs.ConflictReasonOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ReasonInvalidTransition, reason)
	})

	t.Run("pending orders only move through accept or cancel", func(t *testing.T) {
		for _, target := range []order.Status{order.InProgress, order.Delivered} {
			_, err := order.Pending.TransitionTo(target)

			reason, _ := errs.ConflictReasonOf(err)
			assert.Equal(t, errs.ReasonInvalidTransition, reason)
		}
	})

	t.Run("invalid target is a validation error", func(t *testing.T) {
		_, err := order.InProgress.TransitionTo(order.Unknown)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Cancel(t *testing.T) {
	next, err := order.Pending.Cancel()
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, next)

	_, err = order.InProgress.Cancel()
	reason, _ := errs.ConflictReasonOf(err)
	assert.Equal(t, errs.ReasonAlreadyInProgress, reason)

	_, err = order.Delivered.Cancel()
	reason, _ = errs.ConflictReasonOf(err)
	assert.Equal(t, errs.ReasonTerminalState, reason)
}

func TestStatus_ValidateCanHaveRider(t *testing.T) {
	require.NoError(t, order.Pending.ValidateCanHaveRider(false))
	require.Error(t, order.Pending.ValidateCanHaveRider(true))
	require.NoError(t, order.InProgress.ValidateCanHaveRider(true))
	require.Error(t, order.InProgress.ValidateCanHaveRider(false))
	require.Error(t, order.Delivered.ValidateCanHaveRider(false))
	require.NoError(t, order.Cancelled.ValidateCanHaveRider(false))
	require.NoError(t, order.Cancelled.ValidateCanHaveRider(true))
}
