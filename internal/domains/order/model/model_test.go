package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/domains/order/model"
)

func TestCanTransition(t *testing.T) {
	valid := [][2]model.Status{
		{model.StatusNew, model.StatusCooking},
		{model.StatusNew, model.StatusCancelled},
		{model.StatusCooking, model.StatusReady},
		{model.StatusCooking, model.StatusCancelled},
		{model.StatusReady, model.StatusCompleted},
	}

	all := []model.Status{model.StatusNew, model.StatusCooking, model.StatusReady, model.StatusCompleted, model.StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false

			for _, pair := range valid {
				if pair[0] == from && pair[1] == to {
					want = true
				}
			}

			assert.Equal(t, want, model.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestItems_Total(t *testing.T) {
	items := model.Items{
		{MenuItemID: "burger", Price: 8.99, Quantity: 2},
		{MenuItemID: "fries", Price: 5.99, Quantity: 3},
	}

	assert.InDelta(t, 35.95, items.Total(), 0.0001)
	assert.InDelta(t, 17.98, items[0].Subtotal(), 0.0001)
}

func TestItems_ValueScan(t *testing.T) {
	items := model.Items{{MenuItemID: "burger", Name: "Burger", Price: 8.99, Quantity: 2}}

	value, err := items.Value()
	require.NoError(t, err)

	var scanned model.Items
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, items, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}
