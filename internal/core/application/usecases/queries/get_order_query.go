package queries

import (
	"errors"
	"fmt"
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its full item list, the way a
// handheld client pulls an order before picking starts.
//
// Example:
//
//	query, err := NewGetOrderQuery(7)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetOrderQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order. The id must be positive.
func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

func (q *GetOrderQuery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	q.orderID = orderID
	return nil
}

// GetOrderQueryResponse is the full order read model: the lifecycle status
// plus every item in its original file order.
type GetOrderQueryResponse struct {
	ID     int64
	Status string
	Items  []GetOrderItemResponse
}

// GetOrderItemResponse is the read model of one order line, including its
// current pick state. PickedQuantity and PickedAt are nil for lines not yet
// picked.
type GetOrderItemResponse struct {
	ID             kernel.UUID
	Location       string
	ItemCode       string
	Description    string
	UnitOfMeasure  string
	TotalQuantity  kernel.Quantity
	TotalNeeded    kernel.Quantity
	TotalIssued    kernel.Quantity
	PickedQuantity *kernel.Quantity
	PickedAt       *time.Time
}
