package http

import (
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
)

// Error is the JSON error body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderSummary is one row of the open-order listing.
type OrderSummary struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// OrderItem is the wire representation of one order line. Quantities travel
// as decimal strings; picked_at uses the RFC 1123 layout. picked_quantity and
// picked_at are null for lines not yet picked.
type OrderItem struct {
	ID             string  `json:"id"`
	Location       string  `json:"location"`
	ItemCode       string  `json:"item_code"`
	Description    string  `json:"description"`
	UnitOfMeasure  string  `json:"unit_of_measure"`
	TotalQuantity  string  `json:"total_quantity"`
	TotalNeeded    string  `json:"total_needed"`
	TotalIssued    string  `json:"total_issued"`
	PickedQuantity *string `json:"picked_quantity"`
	PickedAt       *string `json:"picked_at"`
}

// Order is the full order wire representation.
type Order struct {
	ID         int64       `json:"id"`
	Status     string      `json:"status"`
	OrderItems []OrderItem `json:"order_items"`
}

// UpdateOrderRequest is a push from a handheld client: an update record per
// item plus an optional target status. The only status a client may request
// is "finished".
type UpdateOrderRequest struct {
	Status     *string                 `json:"status"`
	OrderItems []UpdateOrderItemRecord `json:"order_items"`
}

// UpdateOrderItemRecord is one item-update record. A null picked_quantity
// marks an item the operator did not touch.
type UpdateOrderItemRecord struct {
	ID             string  `json:"id"`
	PickedQuantity *string `json:"picked_quantity"`
	PickedAt       *string `json:"picked_at"`
}

func orderFromQueryResponse(resp queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		wireItem := OrderItem{
			ID:            item.ID.String(),
			Location:      item.Location,
			ItemCode:      item.ItemCode,
			Description:   item.Description,
			UnitOfMeasure: item.UnitOfMeasure,
			TotalQuantity: item.TotalQuantity.String(),
			TotalNeeded:   item.TotalNeeded.String(),
			TotalIssued:   item.TotalIssued.String(),
		}
		if item.PickedQuantity != nil {
			raw := item.PickedQuantity.String()
			wireItem.PickedQuantity = &raw
		}
		if item.PickedAt != nil {
			raw := kernel.FormatPickTime(*item.PickedAt)
			wireItem.PickedAt = &raw
		}
		items = append(items, wireItem)
	}

	return Order{
		ID:         resp.ID,
		Status:     resp.Status,
		OrderItems: items,
	}
}

func orderFromAggregate(aggregate *order.Order) Order {
	items := make([]OrderItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		wireItem := OrderItem{
			ID:            item.ID().String(),
			Location:      item.Location(),
			ItemCode:      item.ItemCode(),
			Description:   item.Description(),
			UnitOfMeasure: item.UnitOfMeasure(),
			TotalQuantity: item.TotalQuantity().String(),
			TotalNeeded:   item.TotalNeeded().String(),
			TotalIssued:   item.TotalIssued().String(),
		}
		if qty := item.PickedQuantity(); qty != nil {
			raw := qty.String()
			wireItem.PickedQuantity = &raw
		}
		if at := item.PickedAt(); at != nil {
			raw := kernel.FormatPickTime(*at)
			wireItem.PickedAt = &raw
		}
		items = append(items, wireItem)
	}

	return Order{
		ID:         aggregate.ID(),
		Status:     aggregate.Status().String(),
		OrderItems: items,
	}
}
