package commands_test

import (
	"testing"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cancelHandler(factory *MockOrderUoWFactory) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(factory, clock())
}

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	customerID := kernel.NewUUID()
	pending := newPendingOrder(customerID)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		orders.On("UpdateIfStatus", mock.Anything, pending, order.Pending).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	cmd, err := commands.NewCancelOrderCommand(customerID, pending.ID())
	require.NoError(t, err)

	cancelled, err := cancelHandler(factory).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cancelled.Status())
	assert.Nil(t, cancelled.RiderID())
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_Rejections(t *testing.T) {
	owner := kernel.NewUUID()
	inProgress := restoreOrder(order.InProgress, ptr(kernel.NewUUID()))
	delivered := restoreOrder(order.Delivered, ptr(kernel.NewUUID()))

	tests := []struct {
		name     string
		target   *order.Order
		customer kernel.UUID
		check    func(t *testing.T, err error)
	}{
		{
			name:     "other customer",
			target:   newPendingOrder(owner),
			customer: kernel.NewUUID(),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, errs.ErrForbidden)
			},
		},
		{
			name:     "already accepted",
			target:   inProgress,
			customer: inProgress.CustomerID(),
			check: func(t *testing.T, err error) {
				reason, _ := errs.ConflictReasonOf(err)
				assert.Equal(t, errs.ReasonAlreadyInProgress, reason)
			},
		},
		{
			name:     "terminal",
			target:   delivered,
			customer: delivered.CustomerID(),
			check: func(t *testing.T, err error) {
				reason, _ := errs.ConflictReasonOf(err)
				assert.Equal(t, errs.ReasonTerminalState, reason)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			uow := new(MockUoW)
			factory := new(MockOrderUoWFactory)

			factory.On("Create").Return(uow).Once()
			uow.On("Begin", mock.Anything).Return(nil).Once()
			uow.On("OrderRepository").Return(orders).Once()
			orders.On("Get", mock.Anything, tt.target.ID()).Return(tt.target, nil).Once()
			uow.On("Rollback", mock.Anything).Return(nil).Once()

			cmd, err := commands.NewCancelOrderCommand(tt.customer, tt.target.ID())
			require.NoError(t, err)

			_, err = cancelHandler(factory).Handle(t.Context(), cmd)

			require.Error(t, err)
			tt.check(t, err)
			orders.AssertNotCalled(t, "UpdateIfStatus", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCancelOrderCommandHandler_Handle_AcceptedMeanwhile(t *testing.T) {
	customerID := kernel.NewUUID()
	pending := newPendingOrder(customerID)
	accepted := restoreOrder(order.InProgress, ptr(kernel.NewUUID()))

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("OrderRepository").Return(orders).Once()
	mock.InOrder(
		orders.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		orders.On("UpdateIfStatus", mock.Anything, pending, order.Pending).
			Return(errs.NewConflictError(errs.ReasonStaleState, "status changed")).Once(),
		orders.On("Get", mock.Anything, pending.ID()).Return(accepted, nil).Once(),
	)
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	cmd, err := commands.NewCancelOrderCommand(customerID, pending.ID())
	require.NoError(t, err)

	_, err = cancelHandler(factory).Handle(t.Context(), cmd)

	reason, ok := errs.ConflictReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonAlreadyInProgress, reason)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
