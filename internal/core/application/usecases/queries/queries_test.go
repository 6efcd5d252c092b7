package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newOrder(t *testing.T, companyID *kernel.UUID) *order.Order {
	t.Helper()
	pickup, _ := kernel.NewAddress("pickupAddress", "1 Pickup Rd")
	delivery, _ := kernel.NewAddress("deliveryAddress", "2 Delivery Ave")
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Box", pickup, delivery, companyID, time.Now())
	require.NoError(t, err)
	return o
}

func TestListOrdersQuery_Constructors(t *testing.T) {
	id := kernel.NewUUID()
	pending := order.Pending

	byStatus, err := queries.NewFetchOrdersByStatusQuery(order.Pending)
	require.NoError(t, err)
	assert.Equal(t, ports.OrderFilter{Status: &pending}, byStatus.Filter())

	byCustomer, err := queries.NewFetchOrdersByCustomerQuery(id)
	require.NoError(t, err)
	assert.Equal(t, ports.OrderFilter{CustomerID: &id}, byCustomer.Filter())

	byRider, err := queries.NewFetchOrdersByRiderQuery(id)
	require.NoError(t, err)
	assert.Equal(t, ports.OrderFilter{RiderID: &id}, byRider.Filter())

	company, err := queries.NewFetchCompanyOrdersQuery(id, nil)
	require.NoError(t, err)
	assert.Equal(t, ports.OrderFilter{LogisticsCompanyID: &id}, company.Filter())

	assert.Equal(t, ports.OrderFilter{}, queries.NewFetchAllOrdersQuery().Filter())

	_, err = queries.NewFetchOrdersByStatusQuery(order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewFetchOrdersByCustomerQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewFetchCompanyOrdersQuery(kernel.UUID{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestQueries_ZeroValueIsNotConstructed(t *testing.T) {
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.CountOrdersQuery{}.Validate(), queries.ErrCountOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetCompanyOrderQuery{}.Validate(), queries.ErrGetCompanyOrderQueryIsNotConstructed)
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	first, second := newOrder(t, nil), newOrder(t, nil)
	query, err := queries.NewFetchOrdersByStatusQuery(order.Pending)
	require.NoError(t, err)

	reader := new(MockOrderReader)
	reader.On("Find", mock.Anything, query.Filter()).Return([]*order.Order{first, second}, nil).Once()

	views, err := queries.NewListOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first.ID(), views[0].ID)
	assert.Equal(t, "1 Pickup Rd", views[0].PickupAddress)
	assert.Equal(t, order.Pending, views[1].Status)
	reader.AssertExpectations(t)
}

func TestListOrdersQueryHandler_Handle_EmptyIsNotAnError(t *testing.T) {
	reader := new(MockOrderReader)
	reader.On("Find", mock.Anything, ports.OrderFilter{}).Return([]*order.Order{}, nil).Once()

	views, err := queries.NewListOrdersQueryHandler(reader).Handle(t.Context(), queries.NewFetchAllOrdersQuery())

	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestListOrdersQueryHandler_Handle_StoreFailure(t *testing.T) {
	reader := new(MockOrderReader)
	reader.On("Find", mock.Anything, ports.OrderFilter{}).Return(nil, errors.New("connection reset")).Once()

	_, err := queries.NewListOrdersQueryHandler(reader).Handle(t.Context(), queries.NewFetchAllOrdersQuery())

	require.ErrorIs(t, err, errs.ErrPersistence)
}

func TestListOrdersQueryHandler_Handle_InvalidQuery(t *testing.T) {
	reader := new(MockOrderReader)

	_, err := queries.NewListOrdersQueryHandler(reader).Handle(t.Context(), queries.ListOrdersQuery{})

	require.ErrorIs(t, err, queries.ErrListOrdersQueryIsNotConstructed)
	reader.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestCountOrdersQueryHandler_Handle(t *testing.T) {
	delivered := order.Delivered
	query, err := queries.NewCountOrdersQuery(&delivered)
	require.NoError(t, err)

	reader := new(MockOrderReader)
	reader.On("Count", mock.Anything, ports.OrderFilter{Status: &delivered}).Return(int64(7), nil).Once()

	count, err := queries.NewCountOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestGetCompanyOrderQueryHandler_Handle(t *testing.T) {
	companyID := kernel.NewUUID()
	routed := newOrder(t, &companyID)
	elsewhere := newOrder(t, ptr(kernel.NewUUID()))
	unrouted := newOrder(t, nil)

	reader := new(MockOrderReader)
	reader.On("Get", mock.Anything, routed.ID()).Return(routed, nil)
	reader.On("Get", mock.Anything, elsewhere.ID()).Return(elsewhere, nil)
	reader.On("Get", mock.Anything, unrouted.ID()).Return(unrouted, nil)
	handler := queries.NewGetCompanyOrderQueryHandler(reader)

	query, err := queries.NewGetCompanyOrderQuery(companyID, routed.ID())
	require.NoError(t, err)
	view, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	assert.Equal(t, &companyID, view.LogisticsCompanyID)

	for _, other := range []*order.Order{elsewhere, unrouted} {
		query, err = queries.NewGetCompanyOrderQuery(companyID, other.ID())
		require.NoError(t, err)
		_, err = handler.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	}
}

func ptr[T any](v T) *T {
	return &v
}
