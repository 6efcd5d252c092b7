package guard_test

import (
	"errors"
	"testing"

	"logistics/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	notConstructed := errors.New("rider must be created via NewRider")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_given_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(notConstructed)

		// Then
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("copies_keep_constructed_state", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()
		copied := g

		// Then
		require.NoError(t, copied.Validate(notConstructed))
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type parcel struct {
		weight int
		guard  guard.ConstructorGuard
	}
	errParcelNotConstructed := errors.New("parcel must be created via newParcel")
	newParcel := func(weight int) (parcel, error) {
		if weight <= 0 {
			return parcel{}, errors.New("weight must be positive")
		}
		return parcel{weight: weight, guard: guard.NewConstructorGuard()}, nil
	}

	p, err := newParcel(3)
	require.NoError(t, err)
	require.NoError(t, p.guard.Validate(errParcelNotConstructed))

	var literal parcel
	assert.Equal(t, errParcelNotConstructed, literal.guard.Validate(errParcelNotConstructed))
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	done := make(chan struct{})
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(nil))
			}
			done <- struct{}{}
		}()
	}
	for range 50 {
		<-done
	}
}

func BenchmarkConstructorGuard_Validate(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	for range b.N {
		_ = g.Validate(err)
	}
}
