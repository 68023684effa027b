package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, qty int64) *Product {
	p, err := NewProduct("Steel Bolt", "SKU-001", qty, decimal.NewFromFloat(2.50), "hardware")
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		p := newTestProduct(t, 100)
		assert.Equal(t, "Steel Bolt", p.Name)
		assert.Equal(t, "SKU-001", p.SKU)
		assert.EqualValues(t, 100, p.Quantity)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewProduct(" ", "SKU-001", 0, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects blank sku", func(t *testing.T) {
		_, err := NewProduct("Bolt", "", 0, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewProduct("Bolt", "SKU-001", -1, decimal.Zero, "")
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Bolt", "SKU-001", 0, decimal.NewFromFloat(-1), "")
		assert.Error(t, err)
	})
}

func TestProduct_DeductStock(t *testing.T) {
	t.Run("deducts available stock", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.DeductStock(4))
		assert.EqualValues(t, 6, p.Quantity)
	})

	t.Run("allows deducting to exactly zero", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.DeductStock(10))
		assert.EqualValues(t, 0, p.Quantity)
	})

	t.Run("fails on insufficient stock without mutating", func(t *testing.T) {
		p := newTestProduct(t, 3)
		err := p.DeductStock(5)
		assert.Error(t, err)
		assert.EqualValues(t, 3, p.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 3)
		assert.Error(t, p.DeductStock(0))
	})
}

func TestProduct_RestockStock(t *testing.T) {
	p := newTestProduct(t, 2)
	require.NoError(t, p.RestockStock(5))
	assert.EqualValues(t, 7, p.Quantity)
	assert.Error(t, p.RestockStock(-1))
}

func TestProduct_StockValue(t *testing.T) {
	p := newTestProduct(t, 4)
	assert.True(t, p.StockValue().Equal(decimal.NewFromFloat(10.00)))
}

func TestProduct_Update(t *testing.T) {
	p := newTestProduct(t, 10)
	price := decimal.NewFromFloat(3.00)
	category := "fasteners"
	require.NoError(t, p.Update(UpdateParams{Price: &price, Category: &category}))
	assert.True(t, p.Price.Equal(price))
	assert.Equal(t, "fasteners", p.Category)

	blank := ""
	assert.Error(t, p.Update(UpdateParams{SKU: &blank}))
}
