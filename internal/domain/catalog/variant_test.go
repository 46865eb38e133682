package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductVariant(t *testing.T) {
	productID := uuid.New()

	t.Run("creates variant with valid inputs", func(t *testing.T) {
		v, err := NewProductVariant(productID, "teapot-blk", "Black", "One Size", 15)
		require.NoError(t, err)

		assert.Equal(t, productID, v.ProductID)
		assert.Equal(t, "TEAPOT-BLK", v.SKUCode)
		assert.Equal(t, 15, v.Stock)
	})

	t.Run("clamps negative initial stock to zero", func(t *testing.T) {
		v, err := NewProductVariant(productID, "TEAPOT-RED", "Red", "One Size", -4)
		require.NoError(t, err)
		assert.Equal(t, 0, v.Stock)
	})

	t.Run("fails without product id", func(t *testing.T) {
		_, err := NewProductVariant(uuid.Nil, "SKU-1", "", "", 1)
		require.Error(t, err)
	})

	t.Run("fails with invalid sku characters", func(t *testing.T) {
		_, err := NewProductVariant(productID, "SKU 001!", "", "", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain")
	})
}

func TestVariantStockClamping(t *testing.T) {
	productID := uuid.New()
	v, err := NewProductVariant(productID, "VASE-STD", "", "", 5)
	require.NoError(t, err)

	t.Run("set below zero clamps to zero", func(t *testing.T) {
		v.SetStock(-10)
		assert.Equal(t, 0, v.Stock)
		assert.True(t, v.IsSoldOut())
	})

	t.Run("decrement past zero clamps to zero", func(t *testing.T) {
		v.SetStock(3)
		v.DecrementStock(5)
		assert.Equal(t, 0, v.Stock)
	})

	t.Run("decrement of non-positive quantity is ignored", func(t *testing.T) {
		v.SetStock(3)
		v.DecrementStock(0)
		v.DecrementStock(-2)
		assert.Equal(t, 3, v.Stock)
	})

	t.Run("adjust applies delta with clamp", func(t *testing.T) {
		v.SetStock(2)
		v.AdjustStock(3)
		assert.Equal(t, 5, v.Stock)
		v.AdjustStock(-8)
		assert.Equal(t, 0, v.Stock)
	})
}
