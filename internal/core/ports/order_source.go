package ports

import (
	"context"

	"picking/internal/core/domain/model/order"
)

// OrderSource is the bulk-ingestion collaborator: an external supply of
// orders waiting to be loaded, typically a directory of delimited files
// dropped by the warehouse management export.
type OrderSource interface {
	// ListOrderIDs returns the ids of every order the source currently
	// offers, in source order.
	ListOrderIDs(ctx context.Context) ([]int64, error)

	// LoadOrder builds the full order aggregate (items included, in file
	// row order) for one of the ids returned by ListOrderIDs.
	LoadOrder(ctx context.Context, id int64) (*order.Order, error)
}
