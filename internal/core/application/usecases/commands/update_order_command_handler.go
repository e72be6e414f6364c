package commands

import (
	"context"
	"errors"
	"time"

	"picking/internal/core/domain/model/order"
	"picking/internal/core/domain/services"
)

// UpdateOrderCommandHandler handles the business logic for an incoming order
// update: status normalization, batch reconciliation, and the optional
// completeness-gated finish.
//
// The whole sequence runs inside one unit of work, and the order row is
// loaded with a write lock so concurrent pushes for the same order serialize
// while other orders proceed independently.
//
// Example:
//
//	handler := NewUpdateOrderCommandHandler(uowFactory)
//	snapshot, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOrderAlreadyFinished):
//	    // terminal order, nothing was changed
//	case errors.Is(err, order.ErrOrderIncomplete):
//	    // picks were committed, the finish was rejected
//	case err != nil:
//	    // lookup or infrastructure failure
//	}
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	reconciler services.PickReconciler
}

// NewUpdateOrderCommandHandler creates a handler for order update operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		reconciler: services.NewPickReconciler(),
	}
}

// Handle processes the update command and returns the refreshed order
// snapshot reflecting whatever was actually applied.
//
// Sequencing: load the order under lock -> reject terminal orders outright ->
// normalize not_started to started -> reconcile the batch (last-write-wins,
// server clock for records without timestamps) -> if a finish was requested,
// attempt the completeness-gated transition. A rejected finish does not roll
// back the reconciled picks: the order is persisted and committed anyway and
// ErrOrderIncomplete is returned together with the committed snapshot.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Start(); err != nil {
		return nil, err
	}

	if _, err = h.reconciler.Reconcile(aggregate, cmd.Updates(), time.Now()); err != nil {
		return nil, err
	}

	var finishErr error
	if cmd.FinishRequested() {
		finishErr = aggregate.Finish()
		if finishErr != nil && !errors.Is(finishErr, order.ErrOrderIncomplete) {
			return nil, finishErr
		}
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, finishErr
}
