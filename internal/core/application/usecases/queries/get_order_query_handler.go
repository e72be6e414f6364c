package queries

import (
	"context"
	"database/sql"
	"errors"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves one order with its items from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(7)
//
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order id
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query for the requested order.
// Returns an ObjectNotFoundError when no order has the given id. Items are
// returned in their original file order.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row()

	if err := row.Scan(&resp.ID, &resp.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
		}
		return GetOrderQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID int64) ([]GetOrderItemResponse, error) {
	items := make([]GetOrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			location,
			item_code,
			description,
			unit_of_measure,
			total_quantity,
			total_needed,
			total_issued,
			picked_quantity,
			picked_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var itemResp GetOrderItemResponse
		var id uuid.UUID
		var totalQuantity, totalNeeded, totalIssued decimal.Decimal
		var pickedQuantity decimal.NullDecimal
		var pickedAt sql.NullTime

		err = rows.Scan(
			&id,
			&itemResp.Location,
			&itemResp.ItemCode,
			&itemResp.Description,
			&itemResp.UnitOfMeasure,
			&totalQuantity,
			&totalNeeded,
			&totalIssued,
			&pickedQuantity,
			&pickedAt,
		)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		itemResp.ID = itemID

		if itemResp.TotalQuantity, err = kernel.NewQuantity(totalQuantity); err != nil {
			return nil, err
		}
		if itemResp.TotalNeeded, err = kernel.NewQuantity(totalNeeded); err != nil {
			return nil, err
		}
		if itemResp.TotalIssued, err = kernel.NewQuantity(totalIssued); err != nil {
			return nil, err
		}

		if pickedQuantity.Valid {
			picked, qtyErr := kernel.NewQuantity(pickedQuantity.Decimal)
			if qtyErr != nil {
				return nil, qtyErr
			}
			itemResp.PickedQuantity = &picked
		}
		if pickedAt.Valid {
			at := pickedAt.Time
			itemResp.PickedAt = &at
		}

		items = append(items, itemResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
