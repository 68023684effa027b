package invoicing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodUPI   PaymentMethod = "upi"
	PaymentMethodOther PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBank, PaymentMethodUPI, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is a recorded money receipt against an invoice. Payments are
// created once and never mutated; they are deleted only as a side effect of
// deleting the owning invoice.
type Payment struct {
	shared.BaseEntity
	InvoiceID     uuid.UUID       `json:"invoiceRef"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        PaymentMethod   `json:"method"`
	Note          string          `json:"note,omitempty"`
	ScheduleIndex *int            `json:"scheduleIndex,omitempty"`
}

// NewPayment creates a new payment record dated now
func NewPayment(invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, note string, scheduleIndex *int) *Payment {
	if method == "" {
		method = PaymentMethodCash
	}
	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		InvoiceID:     invoiceID,
		Amount:        amount,
		Date:          time.Now(),
		Method:        method,
		Note:          note,
		ScheduleIndex: scheduleIndex,
	}
}

// Payments is an ordered collection of payment records
type Payments []Payment

// Sum returns the aggregate amount of all payments
func (ps Payments) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range ps {
		sum = sum.Add(p.Amount)
	}
	return sum
}
