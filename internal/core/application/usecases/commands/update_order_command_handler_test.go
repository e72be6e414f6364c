package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
	"picking/internal/core/domain/services"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(_ context.Context, _ int64) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func storedOrder(t *testing.T, id int64, itemIDs ...kernel.UUID) *order.Order {
	t.Helper()
	qty, err := kernel.ParseQuantity("4")
	require.NoError(t, err)

	items := make([]*order.Item, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		item, err := order.NewItem(itemID, id, "A-01-02", "100-200", "hex bolt M8", "pcs",
			qty, qty, qty)
		require.NoError(t, err)
		items = append(items, item)
	}

	o, err := order.NewOrder(id, items)
	require.NoError(t, err)
	return o
}

func pickUpdateFor(t *testing.T, itemID kernel.UUID, raw string) services.PickUpdate {
	t.Helper()
	qty, err := kernel.ParseQuantity(raw)
	require.NoError(t, err)
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return services.PickUpdate{ItemID: itemID, Quantity: &qty, PickedAt: &at}
}

func TestUpdateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	stored := storedOrder(t, 7, itemID)
	cmd, _ := commands.NewUpdateOrderCommand(7, []services.PickUpdate{pickUpdateFor(t, itemID, "2.5")}, false)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(7)).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, order.Started, snapshot.Status())
	require.True(t, snapshot.Item(itemID).IsPicked())
	assert.Equal(t, "2.5", snapshot.Item(itemID).PickedQuantity().String())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestUpdateOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewUpdateOrderCommand(404, nil, false)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(404)).
			Return(nil, errs.NewObjectNotFoundError("orderID", int64(404))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_AlreadyFinished(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	stored := storedOrder(t, 7, itemID)
	require.NoError(t, stored.Start())
	reconciler := services.NewPickReconciler()
	_, err := reconciler.Reconcile(stored, []services.PickUpdate{pickUpdateFor(t, itemID, "4")}, time.Now())
	require.NoError(t, err)
	require.NoError(t, stored.Finish())

	cmd, _ := commands.NewUpdateOrderCommand(7, []services.PickUpdate{pickUpdateFor(t, itemID, "1")}, false)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(7)).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderAlreadyFinished)
	// nothing persisted and nothing committed
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_FinishComplete(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	stored := storedOrder(t, 7, itemID)
	cmd, _ := commands.NewUpdateOrderCommand(7, []services.PickUpdate{pickUpdateFor(t, itemID, "4")}, true)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(7)).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	snapshot, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Finished, snapshot.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_FinishIncompleteStillCommits(t *testing.T) {
	ctx := t.Context()
	pickedID := kernel.NewUUID()
	unpickedID := kernel.NewUUID()
	stored := storedOrder(t, 7, pickedID, unpickedID)
	cmd, _ := commands.NewUpdateOrderCommand(7, []services.PickUpdate{pickUpdateFor(t, pickedID, "4")}, true)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(7)).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	snapshot, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIncomplete)
	// the pick batch survives the rejected finish
	require.NotNil(t, snapshot)
	assert.Equal(t, order.Started, snapshot.Status())
	assert.True(t, snapshot.Item(pickedID).IsPicked())
	assert.False(t, snapshot.Item(unpickedID).IsPicked())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	itemID := kernel.NewUUID()
	stored := storedOrder(t, 7, itemID)
	cmd, _ := commands.NewUpdateOrderCommand(7, []services.PickUpdate{pickUpdateFor(t, itemID, "2.5")}, false)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(7)).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
