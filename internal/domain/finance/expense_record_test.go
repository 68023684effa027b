package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseRecord(t *testing.T) {
	t.Run("creates expense", func(t *testing.T) {
		date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		e, err := NewExpenseRecord("rent", decimal.NewFromFloat(12000), date, "august")
		require.NoError(t, err)
		assert.Equal(t, "rent", e.Category)
		assert.True(t, e.Date.Equal(date))
	})

	t.Run("defaults date to now", func(t *testing.T) {
		e, err := NewExpenseRecord("misc", decimal.NewFromFloat(50), time.Time{}, "")
		require.NoError(t, err)
		assert.False(t, e.Date.IsZero())
	})

	t.Run("rejects blank category", func(t *testing.T) {
		_, err := NewExpenseRecord("  ", decimal.NewFromFloat(50), time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewExpenseRecord("rent", decimal.Zero, time.Now(), "")
		assert.Error(t, err)
	})
}

func TestExpenseRecord_Update(t *testing.T) {
	e, err := NewExpenseRecord("rent", decimal.NewFromFloat(12000), time.Now(), "")
	require.NoError(t, err)

	amount := decimal.NewFromFloat(12500)
	note := "revised"
	require.NoError(t, e.Update(UpdateParams{Amount: &amount, Note: &note}))
	assert.True(t, e.Amount.Equal(amount))
	assert.Equal(t, "revised", e.Note)

	bad := decimal.NewFromFloat(-1)
	assert.Error(t, e.Update(UpdateParams{Amount: &bad}))
	assert.True(t, e.Amount.Equal(amount))
}
