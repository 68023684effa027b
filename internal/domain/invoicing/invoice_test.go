package invoicing

import (
	"testing"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func testItems(prices ...float64) LineItems {
	items := make(LineItems, 0, len(prices))
	for _, p := range prices {
		items = append(items, LineItem{
			ProductID:   uuid.New(),
			ProductName: "Widget",
			Quantity:    1,
			UnitPrice:   decimal.NewFromFloat(p),
		})
	}
	return items
}

func createTestInvoice(t *testing.T, total float64) *Invoice {
	inv, err := NewInvoice(
		uuid.New(),
		testItems(total),
		decimal.Zero,
		time.Now().AddDate(0, 0, 30),
		nil,
	)
	require.NoError(t, err)
	return inv
}

// ============================================
// InvoiceStatus Tests
// ============================================

func TestInvoiceStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  InvoiceStatus
		isValid bool
	}{
		{InvoiceStatusUnpaid, true},
		{InvoiceStatusPartiallyPaid, true},
		{InvoiceStatusPaid, true},
		{InvoiceStatus("INVALID"), false},
		{InvoiceStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestPaymentMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		isValid bool
	}{
		{PaymentMethodCash, true},
		{PaymentMethodCard, true},
		{PaymentMethodBank, true},
		{PaymentMethodUPI, true},
		{PaymentMethodOther, true},
		{PaymentMethod("cheque"), false},
		{PaymentMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

// ============================================
// ComputeTotals Tests
// ============================================

func TestComputeTotals(t *testing.T) {
	t.Run("sums quantity times price per item", func(t *testing.T) {
		items := LineItems{
			{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromFloat(10.50)},
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromFloat(4.25)},
		}
		subtotal, total := ComputeTotals(items, decimal.Zero)
		assert.True(t, subtotal.Equal(decimal.NewFromFloat(40.00)), "subtotal = %s", subtotal)
		assert.True(t, total.Equal(decimal.NewFromFloat(40.00)))
	})

	t.Run("subtracts flat discount", func(t *testing.T) {
		_, total := ComputeTotals(testItems(100), decimal.NewFromFloat(15))
		assert.True(t, total.Equal(decimal.NewFromFloat(85)))
	})

	t.Run("excess discount floors total at zero", func(t *testing.T) {
		subtotal, total := ComputeTotals(testItems(50), decimal.NewFromFloat(80))
		assert.True(t, subtotal.Equal(decimal.NewFromFloat(50)))
		assert.True(t, total.IsZero(), "total = %s", total)
		assert.False(t, total.IsNegative())
	})

	t.Run("empty items yield zero", func(t *testing.T) {
		subtotal, total := ComputeTotals(nil, decimal.Zero)
		assert.True(t, subtotal.IsZero())
		assert.True(t, total.IsZero())
	})
}

// ============================================
// DeriveStatus Tests
// ============================================

func TestDeriveStatus(t *testing.T) {
	total := decimal.NewFromFloat(100)

	tests := []struct {
		name      string
		totalPaid decimal.Decimal
		expected  InvoiceStatus
	}{
		{"zero paid is unpaid", decimal.Zero, InvoiceStatusUnpaid},
		{"partial payment", decimal.NewFromFloat(40), InvoiceStatusPartiallyPaid},
		{"almost full payment", decimal.NewFromFloat(99.99), InvoiceStatusPartiallyPaid},
		{"exact equality is paid", decimal.NewFromFloat(100), InvoiceStatusPaid},
		{"overpaid is paid", decimal.NewFromFloat(120), InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(total, tt.totalPaid))
		})
	}

	t.Run("zero-total invoice with no payments stays unpaid", func(t *testing.T) {
		assert.Equal(t, InvoiceStatusUnpaid, DeriveStatus(decimal.Zero, decimal.Zero))
	})
}

// ============================================
// NewInvoice Tests
// ============================================

func TestNewInvoice(t *testing.T) {
	customerID := uuid.New()
	dueDate := time.Now().AddDate(0, 0, 30)

	t.Run("creates invoice with computed totals", func(t *testing.T) {
		inv, err := NewInvoice(customerID, testItems(200, 300), decimal.NewFromFloat(50), dueDate, nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, inv.ID)
		assert.Equal(t, customerID, inv.CustomerID)
		assert.True(t, inv.Subtotal.Equal(decimal.NewFromFloat(500)))
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(450)))
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
		assert.Empty(t, inv.PaymentSchedule)
		assert.Empty(t, inv.Payments)
		assert.Equal(t, 1, inv.Version)
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		_, err := NewInvoice(uuid.Nil, testItems(100), decimal.Zero, dueDate, nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := NewInvoice(customerID, nil, decimal.Zero, dueDate, nil)
		assertDomainCode(t, err, ErrCodeInvalidLineItem)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		items := LineItems{{ProductID: uuid.New(), Quantity: 0, UnitPrice: decimal.NewFromFloat(5)}}
		_, err := NewInvoice(customerID, items, decimal.Zero, dueDate, nil)
		assertDomainCode(t, err, ErrCodeInvalidLineItem)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		items := LineItems{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromFloat(-1)}}
		_, err := NewInvoice(customerID, items, decimal.Zero, dueDate, nil)
		assertDomainCode(t, err, ErrCodeInvalidLineItem)
	})

	t.Run("rejects negative discount", func(t *testing.T) {
		_, err := NewInvoice(customerID, testItems(100), decimal.NewFromFloat(-5), dueDate, nil)
		assertDomainCode(t, err, ErrCodeInvalidAmount)
	})

	t.Run("accepts initial schedule matching the total", func(t *testing.T) {
		schedule := ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: dueDate},
			{Amount: decimal.NewFromFloat(40), DueDate: dueDate.AddDate(0, 1, 0)},
		}
		inv, err := NewInvoice(customerID, testItems(100), decimal.Zero, dueDate, schedule)
		require.NoError(t, err)
		require.Len(t, inv.PaymentSchedule, 2)
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[0].Status)
		assert.True(t, inv.PaymentSchedule[0].PaidAmount.IsZero())
	})

	t.Run("rejects initial schedule not matching the total", func(t *testing.T) {
		schedule := ScheduleEntries{{Amount: decimal.NewFromFloat(90), DueDate: dueDate}}
		_, err := NewInvoice(customerID, testItems(100), decimal.Zero, dueDate, schedule)
		assertDomainCode(t, err, ErrCodeScheduleTotalMismatch)
	})
}

// ============================================
// SetPaymentSchedule Tests
// ============================================

func TestInvoice_SetPaymentSchedule(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)

	t.Run("accepts schedule summing exactly to total", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(50), DueDate: due},
			{Amount: decimal.NewFromFloat(50), DueDate: due.AddDate(0, 1, 0)},
		})
		require.NoError(t, err)
		assert.Len(t, inv.PaymentSchedule, 2)
	})

	t.Run("accepts schedule within epsilon tolerance", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(50), DueDate: due},
			{Amount: decimal.NewFromFloat(49.99), DueDate: due},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects schedule just past epsilon tolerance", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(50), DueDate: due},
			{Amount: decimal.NewFromFloat(49.98), DueDate: due},
		})
		assertDomainCode(t, err, ErrCodeScheduleTotalMismatch)
	})

	t.Run("rejects non-positive entry amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.Zero, DueDate: due},
			{Amount: decimal.NewFromFloat(100), DueDate: due},
		})
		assertDomainCode(t, err, ErrCodeInvalidScheduleEntry)
	})

	t.Run("rejects entry without due date", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100)},
		})
		assertDomainCode(t, err, ErrCodeInvalidScheduleEntry)
	})

	t.Run("keeps existing schedule on rejection", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100), DueDate: due},
		}))

		err := inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(42), DueDate: due},
		})
		require.Error(t, err)
		require.Len(t, inv.PaymentSchedule, 1)
		assert.True(t, inv.PaymentSchedule[0].Amount.Equal(decimal.NewFromFloat(100)))
	})

	t.Run("replacement resets paid state", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100), DueDate: due},
		}))
		idx := 0
		_, err := inv.RecordPayment(decimal.NewFromFloat(100), PaymentMethodCash, "", &idx)
		require.NoError(t, err)

		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: due},
			{Amount: decimal.NewFromFloat(40), DueDate: due},
		}))
		for _, e := range inv.PaymentSchedule {
			assert.Equal(t, ScheduleStatusPending, e.Status)
			assert.True(t, e.PaidAmount.IsZero())
			assert.Nil(t, e.PaidDate)
		}
		// recorded payments are untouched by a schedule replacement
		assert.True(t, inv.TotalPaid().Equal(decimal.NewFromFloat(100)))
	})
}

// ============================================
// RecordPayment Tests
// ============================================

func TestInvoice_RecordPayment(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)

	t.Run("records payment and transitions to partially paid", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		p, err := inv.RecordPayment(decimal.NewFromFloat(30), PaymentMethodBank, "first instalment", nil)
		require.NoError(t, err)

		assert.Equal(t, inv.ID, p.InvoiceID)
		assert.Equal(t, PaymentMethodBank, p.Method)
		assert.True(t, inv.TotalPaid().Equal(decimal.NewFromFloat(30)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.Outstanding().Equal(decimal.NewFromFloat(70)))
	})

	t.Run("exact final payment transitions to paid", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.NewFromFloat(60), PaymentMethodCash, "", nil)
		require.NoError(t, err)
		_, err = inv.RecordPayment(decimal.NewFromFloat(40), PaymentMethodCash, "", nil)
		require.NoError(t, err)

		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.Outstanding().IsZero())
	})

	t.Run("defaults empty method to cash", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		p, err := inv.RecordPayment(decimal.NewFromFloat(10), "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethodCash, p.Method)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.Zero, PaymentMethodCash, "", nil)
		assertDomainCode(t, err, ErrCodeInvalidAmount)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.NewFromFloat(10), PaymentMethod("barter"), "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects payment exceeding total and leaves state intact", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.NewFromFloat(80), PaymentMethodCash, "", nil)
		require.NoError(t, err)

		_, err = inv.RecordPayment(decimal.NewFromFloat(30), PaymentMethodCash, "", nil)
		assertDomainCode(t, err, ErrCodePaymentExceedsTotal)
		assert.True(t, inv.TotalPaid().Equal(decimal.NewFromFloat(80)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.Len(t, inv.Payments, 1)
	})

	t.Run("applies payment to targeted schedule entry only", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: due},
			{Amount: decimal.NewFromFloat(40), DueDate: due.AddDate(0, 1, 0)},
		}))

		idx := 1
		_, err := inv.RecordPayment(decimal.NewFromFloat(25), PaymentMethodUPI, "", &idx)
		require.NoError(t, err)

		assert.True(t, inv.PaymentSchedule[0].PaidAmount.IsZero())
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[0].Status)
		assert.True(t, inv.PaymentSchedule[1].PaidAmount.Equal(decimal.NewFromFloat(25)))
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[1].Status)
		assert.NotNil(t, inv.PaymentSchedule[1].PaidDate)
	})

	t.Run("entry becomes paid across partial payments", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: due},
			{Amount: decimal.NewFromFloat(40), DueDate: due},
		}))

		idx := 0
		_, err := inv.RecordPayment(decimal.NewFromFloat(35), PaymentMethodCash, "", &idx)
		require.NoError(t, err)
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[0].Status)

		_, err = inv.RecordPayment(decimal.NewFromFloat(25), PaymentMethodCash, "", &idx)
		require.NoError(t, err)
		assert.Equal(t, ScheduleStatusPaid, inv.PaymentSchedule[0].Status)
		assert.True(t, inv.PaymentSchedule[0].PaidAmount.Equal(decimal.NewFromFloat(60)))
	})

	t.Run("rejects payment exceeding the targeted entry amount", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: due},
			{Amount: decimal.NewFromFloat(40), DueDate: due.AddDate(0, 1, 0)},
		}))

		idx := 1
		_, err := inv.RecordPayment(decimal.NewFromFloat(50), PaymentMethodCash, "", &idx)
		assertDomainCode(t, err, ErrCodeInvalidScheduleEntry)
		assert.True(t, inv.PaymentSchedule[1].PaidAmount.IsZero())
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[1].Status)
		assert.Empty(t, inv.Payments)
		assert.Equal(t, InvoiceStatusUnpaid, inv.Status)
	})

	t.Run("entry cap applies across accumulated payments", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: due},
			{Amount: decimal.NewFromFloat(40), DueDate: due},
		}))

		idx := 0
		_, err := inv.RecordPayment(decimal.NewFromFloat(45), PaymentMethodCash, "", &idx)
		require.NoError(t, err)

		_, err = inv.RecordPayment(decimal.NewFromFloat(20), PaymentMethodCash, "", &idx)
		assertDomainCode(t, err, ErrCodeInvalidScheduleEntry)
		assert.True(t, inv.PaymentSchedule[0].PaidAmount.Equal(decimal.NewFromFloat(45)))
		assert.Len(t, inv.Payments, 1)
	})

	t.Run("rejects out-of-range schedule index", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100), DueDate: due},
		}))

		for _, idx := range []int{-1, 1, 5} {
			i := idx
			_, err := inv.RecordPayment(decimal.NewFromFloat(10), PaymentMethodCash, "", &i)
			assertDomainCode(t, err, ErrCodeInvalidScheduleIndex)
		}
		assert.Empty(t, inv.Payments)
	})

	t.Run("unscheduled payment leaves schedule untouched", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100), DueDate: due},
		}))

		_, err := inv.RecordPayment(decimal.NewFromFloat(100), PaymentMethodCash, "", nil)
		require.NoError(t, err)
		assert.True(t, inv.PaymentSchedule[0].PaidAmount.IsZero())
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})
}

// ============================================
// RefreshOverdueStatuses Tests
// ============================================

func TestInvoice_RefreshOverdueStatuses(t *testing.T) {
	past := time.Now().AddDate(0, 0, -10)
	future := time.Now().AddDate(0, 0, 10)

	newScheduled := func(t *testing.T) *Invoice {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(60), DueDate: past},
			{Amount: decimal.NewFromFloat(40), DueDate: future},
		}))
		return inv
	}

	t.Run("marks past-due pending entries overdue", func(t *testing.T) {
		inv := newScheduled(t)
		changed := inv.RefreshOverdueStatuses(time.Now())
		assert.True(t, changed)
		assert.Equal(t, ScheduleStatusOverdue, inv.PaymentSchedule[0].Status)
		assert.Equal(t, ScheduleStatusPending, inv.PaymentSchedule[1].Status)
	})

	t.Run("is idempotent", func(t *testing.T) {
		inv := newScheduled(t)
		require.True(t, inv.RefreshOverdueStatuses(time.Now()))
		assert.False(t, inv.RefreshOverdueStatuses(time.Now()))
	})

	t.Run("never regresses paid entries", func(t *testing.T) {
		inv := newScheduled(t)
		idx := 0
		_, err := inv.RecordPayment(decimal.NewFromFloat(60), PaymentMethodCash, "", &idx)
		require.NoError(t, err)
		require.Equal(t, ScheduleStatusPaid, inv.PaymentSchedule[0].Status)

		changed := inv.RefreshOverdueStatuses(time.Now())
		assert.False(t, changed)
		assert.Equal(t, ScheduleStatusPaid, inv.PaymentSchedule[0].Status)
	})

	t.Run("no change when nothing is due", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		require.NoError(t, inv.SetPaymentSchedule(ScheduleEntries{
			{Amount: decimal.NewFromFloat(100), DueDate: future},
		}))
		assert.False(t, inv.RefreshOverdueStatuses(time.Now()))
	})
}

// ============================================
// Update Tests
// ============================================

func TestInvoice_Update(t *testing.T) {
	due := time.Now().AddDate(0, 0, 30)

	t.Run("recomputes totals and status on item change", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.NewFromFloat(100), PaymentMethodCash, "", nil)
		require.NoError(t, err)
		require.Equal(t, InvoiceStatusPaid, inv.Status)

		err = inv.Update(UpdateParams{Items: testItems(200)})
		require.NoError(t, err)
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(200)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.False(t, inv.Overpaid())
	})

	t.Run("shrinking total below collected amount flags overpaid", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		_, err := inv.RecordPayment(decimal.NewFromFloat(100), PaymentMethodCash, "", nil)
		require.NoError(t, err)

		err = inv.Update(UpdateParams{Items: testItems(60)})
		require.NoError(t, err)
		assert.True(t, inv.Overpaid())
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		// payments are never rescaled
		assert.True(t, inv.TotalPaid().Equal(decimal.NewFromFloat(100)))
	})

	t.Run("rejects invalid replacement items", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		err := inv.Update(UpdateParams{Items: LineItems{{ProductID: uuid.New(), Quantity: -1, UnitPrice: decimal.NewFromFloat(5)}}})
		assertDomainCode(t, err, ErrCodeInvalidLineItem)
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(100)))
	})

	t.Run("validates supplied schedule against new total", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		discount := decimal.NewFromFloat(20)
		schedule := ScheduleEntries{{Amount: decimal.NewFromFloat(80), DueDate: due}}
		err := inv.Update(UpdateParams{Discount: &discount, Schedule: &schedule})
		require.NoError(t, err)
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(80)))
		assert.Len(t, inv.PaymentSchedule, 1)
	})

	t.Run("rejects schedule mismatching new total without mutating", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		discount := decimal.NewFromFloat(20)
		schedule := ScheduleEntries{{Amount: decimal.NewFromFloat(100), DueDate: due}}
		err := inv.Update(UpdateParams{Discount: &discount, Schedule: &schedule})
		assertDomainCode(t, err, ErrCodeScheduleTotalMismatch)
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(100)))
		assert.True(t, inv.Discount.IsZero())
	})

	t.Run("updates due date alone", func(t *testing.T) {
		inv := createTestInvoice(t, 100)
		newDue := due.AddDate(0, 2, 0)
		err := inv.Update(UpdateParams{DueDate: &newDue})
		require.NoError(t, err)
		assert.True(t, inv.DueDate.Equal(newDue))
		assert.True(t, inv.Total.Equal(decimal.NewFromFloat(100)))
	})
}

// assertDomainCode checks that err is a DomainError carrying the given code
func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}
