package order

import (
	"errors"
	"fmt"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order represents a picking order: a batch of line items a field operator
// must physically collect and record quantities for. It is the aggregate root
// that manages the order lifecycle from ingestion through completion.
//
// Order follows these invariants:
//   - The identifier is assigned externally at ingestion and is immutable
//   - Items are created with the order and never added or removed afterward
//   - Status transitions are forward-only (NotStarted -> Started -> Finished)
//   - The order becomes Finished only when every item has a picked quantity
//   - Once Finished, no further mutation is accepted
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the external identifier, derived from the bulk-load file name
	id int64

	// status represents the current state in the order lifecycle
	status Status

	// items are owned by the order, kept in creation order
	items []*Item

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates an Order in NotStarted state owning the given items.
// This is how orders come to exist at ingestion time.
//
// The id must be positive and every item must be a validated Item that
// back-references this order. The item slice order is preserved as the
// creation order.
func NewOrder(id int64, items []*Item) (*Order, error) {
	order := &Order{
		status:        NotStarted,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setItems(id, items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence with its current
// status. It applies the same validation as NewOrder plus status validation.
func RestoreOrder(id int64, status Status, items []*Item) (*Order, error) {
	order, err := NewOrder(id, items)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	order.status = status

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's external identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns the owned items in creation order.
// The returned slice must not be modified.
func (o *Order) Items() []*Item {
	return o.items
}

// Item returns the owned item with the given id, or nil if the order owns no
// such item.
func (o *Order) Item(id kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item
		}
	}
	return nil
}

// UnpickedCount returns the number of items that have no picked quantity yet.
func (o *Order) UnpickedCount() int {
	count := 0
	for _, item := range o.items {
		if !item.IsPicked() {
			count++
		}
	}
	return count
}

// Start normalizes the order status for an incoming update request:
// a NotStarted order advances to Started, a Started order stays Started.
//
// Returns ErrOrderAlreadyFinished when the order is terminal; in that case
// the caller must reject the whole request without mutating anything.
func (o *Order) Start() error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Finish marks the order as completed.
//
// This method enforces the completeness invariant: every owned item must
// have a picked quantity at the moment of the call. Returns
// ErrOrderIncomplete otherwise, and ErrOrderAlreadyFinished when the order
// is already terminal. A failed finish leaves the order and its items
// untouched; picks recorded earlier in the same request remain in place.
func (o *Order) Finish() error {
	newStatus, err := o.status.Finish()
	if err != nil {
		return err
	}

	if o.UnpickedCount() > 0 {
		return ErrOrderIncomplete
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setItems(id int64, items []*Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.OrderID() != id {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %s belongs to order %d, not %d", item.ID(), item.OrderID(), id))
		}
	}
	o.items = items
	return nil
}
