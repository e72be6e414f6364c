package services_test

import (
	"testing"
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/order"
	"picking/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuantity(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	qty, err := kernel.ParseQuantity(s)
	require.NoError(t, err)
	return qty
}

func quantityPtr(t *testing.T, s string) *kernel.Quantity {
	t.Helper()
	qty := mustQuantity(t, s)
	return &qty
}

func buildOrder(t *testing.T, itemCount int) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, itemCount)
	for range itemCount {
		item, err := order.NewItem(kernel.NewUUID(), 7, "A-01", "SKU-1", "desc", "EA",
			mustQuantity(t, "100"), mustQuantity(t, "10"), mustQuantity(t, "0"))
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.NewOrder(7, items)
	require.NoError(t, err)
	return o
}

func TestPickReconciler_Reconcile(t *testing.T) {
	reconciler := services.NewPickReconciler()
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

	t.Run("applies records with quantities", func(t *testing.T) {
		o := buildOrder(t, 2)
		at := now.Add(-time.Hour)

		applied, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "10"), PickedAt: &at},
		}, now)

		require.NoError(t, err)
		require.Len(t, applied, 1)
		assert.True(t, applied[0].IsEqual(o.Items()[0].ID()))
		assert.True(t, o.Items()[0].PickedQuantity().IsEqual(mustQuantity(t, "10")))
		assert.True(t, o.Items()[0].PickedAt().Equal(at))
		assert.False(t, o.Items()[1].IsPicked())
	})

	t.Run("records without quantity are no-ops", func(t *testing.T) {
		o := buildOrder(t, 1)

		applied, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: o.Items()[0].ID()},
		}, now)

		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.False(t, o.Items()[0].IsPicked())
	})

	t.Run("unknown item ids do not abort the batch", func(t *testing.T) {
		o := buildOrder(t, 1)

		applied, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: kernel.NewUUID(), Quantity: quantityPtr(t, "3")},
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "10")},
		}, now)

		require.NoError(t, err)
		require.Len(t, applied, 1)
		assert.True(t, applied[0].IsEqual(o.Items()[0].ID()))
	})

	t.Run("absent timestamp defaults to the reconciliation clock", func(t *testing.T) {
		o := buildOrder(t, 1)

		_, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "10")},
		}, now)

		require.NoError(t, err)
		assert.True(t, o.Items()[0].PickedAt().Equal(now))
	})

	t.Run("stale record is discarded", func(t *testing.T) {
		o := buildOrder(t, 1)
		newer := now
		older := now.Add(-time.Hour)

		_, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "10"), PickedAt: &newer},
		}, now)
		require.NoError(t, err)

		applied, err := reconciler.Reconcile(o, []services.PickUpdate{
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "8"), PickedAt: &older},
		}, now.Add(time.Minute))

		require.NoError(t, err)
		assert.Empty(t, applied)
		assert.True(t, o.Items()[0].PickedQuantity().IsEqual(mustQuantity(t, "10")))
		assert.True(t, o.Items()[0].PickedAt().Equal(newer))
	})

	t.Run("replaying an applied batch is idempotent", func(t *testing.T) {
		o := buildOrder(t, 1)
		at := now
		batch := []services.PickUpdate{
			{ItemID: o.Items()[0].ID(), Quantity: quantityPtr(t, "10"), PickedAt: &at},
		}

		first, err := reconciler.Reconcile(o, batch, now)
		require.NoError(t, err)
		require.Len(t, first, 1)

		second, err := reconciler.Reconcile(o, batch, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Empty(t, second)
	})

	t.Run("unconstructed order is rejected", func(t *testing.T) {
		var o order.Order
		_, err := reconciler.Reconcile(&o, nil, now)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
