package kernel

import (
	"fmt"
	"strings"

	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// QuantityScale is the number of fractional digits every quantity is fixed to
// at ingestion. Warehouse scales report three decimals, and the bulk-load
// files carry at most three.
const QuantityScale = 3

// ErrQuantityIsNotConstructed is returned when attempting to use an improperly
// initialized Quantity. Quantities must be created via NewQuantity or
// ParseQuantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity or ParseQuantity")

// Quantity represents a non-negative amount of stock, fixed to three
// fractional digits. Quantity is an immutable value object; the zero value is
// invalid and will fail validation - use the constructors to create instances.
//
// Example:
//
//	qty, err := kernel.ParseQuantity("12,5")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(qty) // Output: 12.5
type Quantity struct { //nolint:recvcheck //using for validation
	value decimal.Decimal
	guard guard.ConstructorGuard
}

// NewQuantity creates a Quantity from a decimal value.
// The value is rounded to QuantityScale fractional digits and must not be
// negative.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%s is negative", value))
	}

	return Quantity{
		value: value.Round(QuantityScale),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseQuantity creates a Quantity from its textual representation.
// Both comma and dot decimal separators are accepted; the bulk-load files use
// either depending on the locale of the system that exported them.
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, errs.NewValueIsRequiredError("quantity")
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}

	return NewQuantity(value)
}

// Decimal returns the underlying decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String returns the canonical textual representation of the quantity.
func (q Quantity) String() string {
	return q.value.String()
}

// IsEqual compares two quantities by numeric value.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}

// Validate checks if the Quantity was properly constructed using a constructor.
// The zero value of Quantity is invalid and will fail this validation.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}
