package queries

import (
	"errors"

	"picking/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves every order still available for picking.
// Returns orders in "not_started" or "started" status; finished orders drop
// out of the listing so operators only see actionable work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Order %d: %s\n", o.ID, o.Status)
//	}
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query that fetches all non-finished orders.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOpenOrdersQueryIsNotConstructed if validation fails.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one row of the open-order listing:
// just the identifier and the lifecycle status, enough for a client to
// decide which order to pull in full.
type GetOpenOrdersQueryResponse struct {
	ID     int64
	Status string
}
