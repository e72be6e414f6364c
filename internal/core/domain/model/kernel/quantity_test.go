package kernel_test

import (
	"errors"
	"testing"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("should create quantity from decimal", func(t *testing.T) {
		qty, err := kernel.NewQuantity(decimal.NewFromInt(10))

		require.NoError(t, err)
		require.NoError(t, qty.Validate())
		assert.Equal(t, "10", qty.String())
	})

	t.Run("should round to three fractional digits", func(t *testing.T) {
		value, err := decimal.NewFromString("1.23456")
		require.NoError(t, err)

		qty, err := kernel.NewQuantity(value)
		require.NoError(t, err)
		assert.Equal(t, "1.235", qty.String())
	})

	t.Run("should reject negative values", func(t *testing.T) {
		_, err := kernel.NewQuantity(decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}

func TestParseQuantity(t *testing.T) {
	t.Run("should parse dot decimal separator", func(t *testing.T) {
		qty, err := kernel.ParseQuantity("12.5")

		require.NoError(t, err)
		assert.Equal(t, "12.5", qty.String())
	})

	t.Run("should parse comma decimal separator", func(t *testing.T) {
		qty, err := kernel.ParseQuantity("12,5")

		require.NoError(t, err)
		assert.Equal(t, "12.5", qty.String())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		qty, err := kernel.ParseQuantity("  3,25 ")

		require.NoError(t, err)
		assert.Equal(t, "3.25", qty.String())
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.ParseQuantity("")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should reject non-numeric input", func(t *testing.T) {
		_, err := kernel.ParseQuantity("lots")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	})
}

func TestQuantityIsEqual(t *testing.T) {
	a, err := kernel.ParseQuantity("5.000")
	require.NoError(t, err)
	b, err := kernel.ParseQuantity("5")
	require.NoError(t, err)
	c, err := kernel.ParseQuantity("5.001")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestQuantityValidate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var qty kernel.Quantity
		require.Error(t, qty.Validate())
	})
}
