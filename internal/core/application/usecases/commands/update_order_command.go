package commands

import (
	"errors"
	"fmt"

	"picking/internal/core/domain/services"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents one push from a handheld client: a batch of
// item-update records for a single order, optionally asking for the order to
// be finished.
//
// Example:
//
//	cmd, err := NewUpdateOrderCommand(7, updates, true)
//	if err != nil {
//	    return fmt.Errorf("invalid update: %w", err)
//	}
//
//	handler := NewUpdateOrderCommandHandler(uowFactory)
//	snapshot, err := handler.Handle(ctx, cmd)
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	updates       []services.PickUpdate
	finishRequest bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command carrying an update batch for the
// given order. Validates that the order id is positive and that every record
// carries a constructed item id; per-record quantity/timestamp presence is a
// reconciliation concern, not a command-validity concern.
func NewUpdateOrderCommand(orderID int64, updates []services.PickUpdate, finishRequest bool) (UpdateOrderCommand, error) {
	command := UpdateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUpdates(updates),
	); err != nil {
		return UpdateOrderCommand{}, err
	}
	command.finishRequest = finishRequest

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderCommandIsNotConstructed if validation fails.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being updated.
func (c UpdateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Updates returns the item-update records, in the order the client sent them.
func (c UpdateOrderCommand) Updates() []services.PickUpdate {
	return c.updates
}

// FinishRequested reports whether the client asked for the order to be
// marked finished after reconciliation.
func (c UpdateOrderCommand) FinishRequested() bool {
	return c.finishRequest
}

func (c *UpdateOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setUpdates(updates []services.PickUpdate) error {
	for _, update := range updates {
		if err := update.ItemID.Validate(); err != nil {
			return err
		}
	}
	c.updates = updates
	return nil
}
