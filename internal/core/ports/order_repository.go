package ports

import (
	"context"

	"picking/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for picking-order
// aggregates. Provides methods for storing, retrieving, and updating orders
// together with their items.
type OrderRepository interface {
	// Add persists a new order aggregate and all of its items.
	// Returns an error when an order with the same id already exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable state of an existing order: its status and
	// the picked fields of its items. Reference data never changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier, with items in
	// creation order.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order like Get, additionally taking a
	// row-level write lock on the order inside the current transaction.
	// Concurrent updates to the same order serialize on this lock while
	// updates to other orders proceed independently.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Exists reports whether an order with the given id is already stored.
	// Used by ingestion to keep bulk loading idempotent.
	Exists(ctx context.Context, id int64) (bool, error)
}
