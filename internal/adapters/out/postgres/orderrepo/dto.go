// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the picking order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column is indexed because the open-order listing filters on it.
type OrderDTO struct {
	ID     int64     `gorm:"primaryKey;autoIncrement:false"`
	Status string    `gorm:"type:text;index"`
	Items  []ItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Position preserves the original file row
// order so clients always see items in the sequence the export produced.
// PickedQuantity and PickedAt are null until a pick is recorded.
type ItemDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID        int64            `gorm:"index"`
	Position       int              `gorm:"not null"`
	Location       string           `gorm:"type:text"`
	ItemCode       string           `gorm:"type:text"`
	Description    string           `gorm:"type:text"`
	UnitOfMeasure  string           `gorm:"type:text"`
	TotalQuantity  decimal.Decimal  `gorm:"type:numeric(12,3)"`
	TotalNeeded    decimal.Decimal  `gorm:"type:numeric(12,3)"`
	TotalIssued    decimal.Decimal  `gorm:"type:numeric(12,3)"`
	PickedQuantity *decimal.Decimal `gorm:"type:numeric(12,3)"`
	PickedAt       *time.Time
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Item positions are assigned from the aggregate's creation order.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		items = append(items, itemFromDomain(item, position))
	}

	return OrderDTO{
		ID:     aggregate.ID(),
		Status: aggregate.Status().String(),
		Items:  items,
	}
}

func itemFromDomain(item *order.Item, position int) ItemDTO {
	var pickedQuantity *decimal.Decimal
	if qty := item.PickedQuantity(); qty != nil {
		raw := qty.Decimal()
		pickedQuantity = &raw
	}

	var pickedAt *time.Time
	if at := item.PickedAt(); at != nil {
		raw := *at
		pickedAt = &raw
	}

	return ItemDTO{
		ID:             item.ID().Bytes(),
		OrderID:        item.OrderID(),
		Position:       position,
		Location:       item.Location(),
		ItemCode:       item.ItemCode(),
		Description:    item.Description(),
		UnitOfMeasure:  item.UnitOfMeasure(),
		TotalQuantity:  item.TotalQuantity().Decimal(),
		TotalNeeded:    item.TotalNeeded().Decimal(),
		TotalIssued:    item.TotalIssued().Decimal(),
		PickedQuantity: pickedQuantity,
		PickedAt:       pickedAt,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including item pick state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(dto.ID, status, items)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	totalQuantity, err := kernel.NewQuantity(dto.TotalQuantity)
	if err != nil {
		return nil, err
	}
	totalNeeded, err := kernel.NewQuantity(dto.TotalNeeded)
	if err != nil {
		return nil, err
	}
	totalIssued, err := kernel.NewQuantity(dto.TotalIssued)
	if err != nil {
		return nil, err
	}

	var pickedQuantity *kernel.Quantity
	if dto.PickedQuantity != nil {
		qty, qtyErr := kernel.NewQuantity(*dto.PickedQuantity)
		if qtyErr != nil {
			return nil, qtyErr
		}
		pickedQuantity = &qty
	}

	return order.RestoreItem(id, dto.OrderID,
		dto.Location, dto.ItemCode, dto.Description, dto.UnitOfMeasure,
		totalQuantity, totalNeeded, totalIssued,
		pickedQuantity, dto.PickedAt)
}
