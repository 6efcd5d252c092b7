package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/rider"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func availabilityMocks() (*MockRiderRepository, *MockUoW, *MockRiderUoWFactory) {
	riders := new(MockRiderRepository)
	uow := new(MockUoW)
	factory := new(MockRiderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("RiderRepository").Return(riders).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return riders, uow, factory
}

func setAvailability(t *testing.T, factory *MockRiderUoWFactory, riderID kernel.UUID, status rider.Status) (*rider.Rider, error) {
	t.Helper()
	cmd, err := commands.NewSetRiderAvailabilityCommand(riderID, status)
	require.NoError(t, err)
	return commands.NewSetRiderAvailabilityCommandHandler(factory, clock()).Handle(t.Context(), cmd)
}

func TestSetRiderAvailabilityCommandHandler_Handle_GoesOnBreak(t *testing.T) {
	riders, uow, factory := availabilityMocks()
	available := newAvailableRider()

	riders.On("Get", mock.Anything, available.ID()).Return(available, nil).Once()
	riders.On("UpdateIfStatus", mock.Anything, available, rider.Available).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	updated, err := setAvailability(t, factory, available.ID(), rider.OnBreak)

	require.NoError(t, err)
	assert.Equal(t, rider.OnBreak, updated.Status())
	riders.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSetRiderAvailabilityCommandHandler_Handle_SameStatusWritesNothing(t *testing.T) {
	riders, uow, factory := availabilityMocks()
	available := newAvailableRider()
	riders.On("Get", mock.Anything, available.ID()).Return(available, nil).Once()

	_, err := setAvailability(t, factory, available.ID(), rider.Available)

	require.NoError(t, err)
	riders.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSetRiderAvailabilityCommandHandler_Handle_BusyRider(t *testing.T) {
	riders, _, factory := availabilityMocks()
	busy := restoreRider(rider.Busy, true, ptr(kernel.NewUUID()))
	riders.On("Get", mock.Anything, busy.ID()).Return(busy, nil).Once()

	_, err := setAvailability(t, factory, busy.ID(), rider.OnBreak)

	reason, ok := errs.ConflictReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonRiderBusy, reason)
	assert.Equal(t, rider.Busy, busy.Status())
}

func TestSetRiderAvailabilityCommandHandler_Handle_AcceptedMeanwhile(t *testing.T) {
	riders, uow, factory := availabilityMocks()
	available := newAvailableRider()

	riders.On("Get", mock.Anything, available.ID()).Return(available, nil).Once()
	riders.On("UpdateIfStatus", mock.Anything, available, rider.Available).
		Return(errs.NewConflictError(errs.ReasonStaleState, "status changed")).Once()

	_, err := setAvailability(t, factory, available.ID(), rider.OnBreak)

	reason, ok := errs.ConflictReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonRiderBusy, reason)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
