package order

import (
	"errors"
	"fmt"
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a line of a picking order: one location/article pair the operator
// must collect. Items are created once, in bulk, when an order is ingested;
// they are never added or removed afterward.
//
// All reference data (location, item code, description, unit of measure and
// the three total quantities) is immutable after creation. Only the picked
// state (pickedQuantity, pickedAt) mutates, exclusively through RecordPick,
// which enforces the last-write-wins-by-timestamp rule.
//
// An absent pickedQuantity means "not yet picked"; pickedAt is set whenever
// pickedQuantity is (re)written.
type Item struct {
	// id is the unique identifier for the item, assigned at ingestion
	id kernel.UUID

	// orderID is a back-reference to the owning order, used only for
	// lookup and filtering
	orderID int64

	// immutable reference data from the bulk-load file
	location      string
	itemCode      string
	description   string
	unitOfMeasure string
	totalQuantity kernel.Quantity
	totalNeeded   kernel.Quantity
	totalIssued   kernel.Quantity

	// picked state; nil pickedQuantity means not yet picked
	pickedQuantity *kernel.Quantity
	pickedAt       *time.Time

	// isConstructed ensures the item was created via a factory method
	isConstructed bool
}

// NewItem creates an unpicked Item with validated reference data.
// This is how items come to exist at ingestion time.
//
// Returns a validation error if the id, owner or any reference field is
// invalid.
func NewItem(
	id kernel.UUID,
	orderID int64,
	location string,
	itemCode string,
	description string,
	unitOfMeasure string,
	totalQuantity kernel.Quantity,
	totalNeeded kernel.Quantity,
	totalIssued kernel.Quantity,
) (*Item, error) {
	item := &Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setReference(location, itemCode, description, unitOfMeasure),
		item.setTotals(totalQuantity, totalNeeded, totalIssued),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem reconstructs an Item from persistence, including its picked
// state. It applies the same validation as NewItem.
func RestoreItem(
	id kernel.UUID,
	orderID int64,
	location string,
	itemCode string,
	description string,
	unitOfMeasure string,
	totalQuantity kernel.Quantity,
	totalNeeded kernel.Quantity,
	totalIssued kernel.Quantity,
	pickedQuantity *kernel.Quantity,
	pickedAt *time.Time,
) (*Item, error) {
	item, err := NewItem(id, orderID, location, itemCode, description, unitOfMeasure,
		totalQuantity, totalNeeded, totalIssued)
	if err != nil {
		return nil, err
	}

	if pickedQuantity != nil {
		if err = pickedQuantity.Validate(); err != nil {
			return nil, err
		}
		if pickedAt == nil {
			return nil, errs.NewValueIsRequiredError("pickedAt must accompany pickedQuantity")
		}
		qty := *pickedQuantity
		at := *pickedAt
		item.pickedQuantity = &qty
		item.pickedAt = &at
	}

	return item, nil
}

// Validate ensures the Item instance was properly constructed through a
// factory method.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identifier of the owning order.
func (i *Item) OrderID() int64 {
	return i.orderID
}

// Location returns the warehouse location the item is collected from.
func (i *Item) Location() string {
	return i.location
}

// ItemCode returns the article code.
func (i *Item) ItemCode() string {
	return i.itemCode
}

// Description returns the human-readable article description.
func (i *Item) Description() string {
	return i.description
}

// UnitOfMeasure returns the unit the quantities are expressed in.
func (i *Item) UnitOfMeasure() string {
	return i.unitOfMeasure
}

// TotalQuantity returns the total stocked quantity reference value.
func (i *Item) TotalQuantity() kernel.Quantity {
	return i.totalQuantity
}

// TotalNeeded returns the quantity the operator is asked to pick.
func (i *Item) TotalNeeded() kernel.Quantity {
	return i.totalNeeded
}

// TotalIssued returns the quantity already issued reference value.
func (i *Item) TotalIssued() kernel.Quantity {
	return i.totalIssued
}

// PickedQuantity returns the recorded picked quantity.
// Returns nil if the item has not been picked yet.
func (i *Item) PickedQuantity() *kernel.Quantity {
	return i.pickedQuantity
}

// PickedAt returns the time of the last accepted pick.
// Returns nil if the item has not been picked yet.
func (i *Item) PickedAt() *time.Time {
	return i.pickedAt
}

// IsPicked reports whether a picked quantity has been recorded.
func (i *Item) IsPicked() bool {
	return i.pickedQuantity != nil
}

// RecordPick applies an incoming pick under the last-write-wins rule:
// the pick is accepted only if the item has never been picked or its current
// pickedAt is strictly earlier than the incoming timestamp. Equal or later
// current timestamps keep the stored pick, so a stale resync never clobbers
// a newer one and re-sending an already-applied record is a no-op.
//
// Returns true when the pick was applied.
func (i *Item) RecordPick(quantity kernel.Quantity, at time.Time) (bool, error) {
	if err := i.Validate(); err != nil {
		return false, err
	}
	if err := quantity.Validate(); err != nil {
		return false, err
	}

	if i.pickedAt != nil && !i.pickedAt.Before(at) {
		return false, nil
	}

	i.pickedQuantity = &quantity
	i.pickedAt = &at
	return true, nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setReference(location, itemCode, description, unitOfMeasure string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	if itemCode == "" {
		return errs.NewValueIsRequiredError("itemCode")
	}
	if unitOfMeasure == "" {
		return errs.NewValueIsRequiredError("unitOfMeasure")
	}

	i.location = location
	i.itemCode = itemCode
	i.description = description
	i.unitOfMeasure = unitOfMeasure
	return nil
}

func (i *Item) setTotals(totalQuantity, totalNeeded, totalIssued kernel.Quantity) error {
	if err := errors.Join(
		totalQuantity.Validate(),
		totalNeeded.Validate(),
		totalIssued.Validate(),
	); err != nil {
		return err
	}

	i.totalQuantity = totalQuantity
	i.totalNeeded = totalNeeded
	i.totalIssued = totalIssued
	return nil
}
