package queries

import (
	"context"

	"picking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves orders available for picking from the
// database. Finished orders are filtered out so the listing reflects the
// remaining workload.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all open orders.
// Returns orders in "not_started" or "started" status, sorted by order ID for
// consistent output.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status
		FROM orders
		WHERE status != ?
		ORDER BY id
	`, order.Finished.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetOpenOrdersQueryResponse

		err = rows.Scan(
			&orderResp.ID,
			&orderResp.Status,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
