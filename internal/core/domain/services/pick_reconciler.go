package services

import (
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
)

// PickUpdate is one incoming item-update record from a client batch.
// Quantity is optional: a nil Quantity marks a record describing an item the
// client did not touch, and such records are ignored. PickedAt is optional:
// a nil PickedAt means the client did not capture a pick time and the server
// clock at reconciliation is used instead.
type PickUpdate struct {
	ItemID   kernel.UUID
	Quantity *kernel.Quantity
	PickedAt *time.Time
}

// PickReconciler is a domain service responsible for merging a batch of
// incoming pick updates into an order's items under the
// last-write-wins-by-timestamp rule.
//
// Batch semantics are deliberately best-effort:
//   - records without a picked quantity are no-ops
//   - records referencing items the order does not own are silently skipped;
//     a client file may carry typos or items no longer tracked without losing
//     the value of the rest of the batch
//   - each record is decided independently; there is no atomicity across the
//     batch at this level (the enclosing unit of work provides it per request)
//
// Example usage:
//
//	reconciler := services.NewPickReconciler()
//	applied := reconciler.Reconcile(pickingOrder, updates, time.Now())
//	// applied holds the ids of items actually mutated
type PickReconciler struct{}

// NewPickReconciler creates a new PickReconciler instance.
func NewPickReconciler() PickReconciler {
	return PickReconciler{}
}

// Reconcile applies the batch to the order's items and returns the ids of the
// items actually mutated, in batch order.
//
// Per record: resolve the effective timestamp (the record's own PickedAt, or
// now when absent), then apply it only if the item has never been picked or
// its current pick is strictly older. Equal or newer stored picks win, so
// stale resyncs never clobber fresher data and retries are idempotent.
func (r PickReconciler) Reconcile(o *order.Order, updates []PickUpdate, now time.Time) ([]kernel.UUID, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	applied := make([]kernel.UUID, 0, len(updates))
	for _, update := range updates {
		if update.Quantity == nil {
			continue
		}

		item := o.Item(update.ItemID)
		if item == nil {
			continue
		}

		at := now
		if update.PickedAt != nil {
			at = *update.PickedAt
		}

		ok, err := item.RecordPick(*update.Quantity, at)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, update.ItemID)
		}
	}

	return applied, nil
}
