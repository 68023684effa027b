package invoicing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// ScheduleStatus represents the status of a payment schedule entry
type ScheduleStatus string

const (
	ScheduleStatusPending ScheduleStatus = "pending"
	ScheduleStatusPaid    ScheduleStatus = "paid"
	ScheduleStatusOverdue ScheduleStatus = "overdue"
)

// IsValid checks if the schedule status is valid
func (s ScheduleStatus) IsValid() bool {
	return s == ScheduleStatusPending || s == ScheduleStatusPaid || s == ScheduleStatusOverdue
}

// amountEpsilon is the tolerance used when comparing sums of decimal
// amounts at validation boundaries. Stored amounts are exact decimals.
var amountEpsilon = decimal.NewFromFloat(0.01)

// LineItem is one product/quantity/price entry within an invoice
type LineItem struct {
	ProductID   uuid.UUID       `json:"productRef"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal returns quantity x unit price
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// LineItems is a slice of LineItem stored as JSONB
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *LineItems) Scan(value any) error {
	return scanJSONSlice(value, l)
}

// ScheduleEntry is one dated installment of an invoice's payment schedule.
// Status is derived: paid when PaidAmount >= Amount, otherwise overdue when
// the due date has passed, otherwise pending.
type ScheduleEntry struct {
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Status      ScheduleStatus  `json:"status"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	Description string          `json:"description,omitempty"`
}

// IsPaid returns true if the entry has been fully paid
func (e ScheduleEntry) IsPaid() bool {
	return e.PaidAmount.GreaterThanOrEqual(e.Amount)
}

// ScheduleEntries is a slice of ScheduleEntry stored as JSONB
type ScheduleEntries []ScheduleEntry

// Value implements driver.Valuer for JSONB storage
func (s ScheduleEntries) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *ScheduleEntries) Scan(value any) error {
	return scanJSONSlice(value, s)
}

// Sum returns the aggregate scheduled amount
func (s ScheduleEntries) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func scanJSONSlice(value, dest any) error {
	if value == nil {
		return json.Unmarshal([]byte("[]"), dest)
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan JSON slice: unsupported type")
	}
	if len(bytes) == 0 {
		bytes = []byte("[]")
	}
	return json.Unmarshal(bytes, dest)
}

// Invoice is the aggregate root of the invoicing context. Subtotal, Total
// and Status are derived values, recomputed explicitly by the mutation
// methods rather than by persistence hooks so the control flow stays
// visible and testable.
type Invoice struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `json:"customerRef"`
	Items           LineItems       `json:"items"`
	Discount        decimal.Decimal `json:"discount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	Status          InvoiceStatus   `json:"status"`
	DueDate         time.Time       `json:"dueDate"`
	PaymentSchedule ScheduleEntries `json:"paymentSchedule"`
	Payments        Payments        `json:"payments"`
}

// ComputeTotals computes the invoice subtotal and total from line items and
// a flat discount. The discount never produces a negative total; an excess
// discount is capped at the subtotal.
func ComputeTotals(items LineItems, discount decimal.Decimal) (subtotal, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	total = subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return subtotal, total
}

// DeriveStatus derives the invoice status from the total and the aggregate
// paid amount. Pure function: zero paid is unpaid, paid >= total is paid
// (exactly at equality, not only strictly greater), anything between is
// partially paid.
func DeriveStatus(total, totalPaid decimal.Decimal) InvoiceStatus {
	if totalPaid.LessThanOrEqual(decimal.Zero) {
		return InvoiceStatusUnpaid
	}
	if totalPaid.GreaterThanOrEqual(total) {
		return InvoiceStatusPaid
	}
	return InvoiceStatusPartiallyPaid
}

func validateItems(items LineItems) error {
	if len(items) == 0 {
		return shared.NewDomainError(ErrCodeInvalidLineItem, "Invoice must have at least one line item")
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainErrorWithDetails(ErrCodeInvalidLineItem, "Line item product reference cannot be empty", map[string]any{"index": i})
		}
		if item.Quantity <= 0 {
			return shared.NewDomainErrorWithDetails(ErrCodeInvalidLineItem, "Line item quantity must be positive", map[string]any{"index": i})
		}
		if item.UnitPrice.IsNegative() {
			return shared.NewDomainErrorWithDetails(ErrCodeInvalidLineItem, "Line item unit price cannot be negative", map[string]any{"index": i})
		}
	}
	return nil
}

// validateSchedule checks entry preconditions and the schedule-sum invariant
// against the given total, returning a fresh schedule with paid state reset.
func validateSchedule(entries ScheduleEntries, total decimal.Decimal) (ScheduleEntries, error) {
	for i, e := range entries {
		if !e.Amount.IsPositive() {
			return nil, NewInvalidScheduleEntryError(i, "amount must be positive")
		}
		if e.DueDate.IsZero() {
			return nil, NewInvalidScheduleEntryError(i, "due date is required")
		}
	}
	scheduled := entries.Sum()
	if scheduled.Sub(total).Abs().GreaterThan(amountEpsilon) {
		return nil, NewScheduleTotalMismatchError(scheduled, total)
	}

	fresh := make(ScheduleEntries, len(entries))
	for i, e := range entries {
		fresh[i] = ScheduleEntry{
			Amount:      e.Amount,
			DueDate:     e.DueDate,
			Status:      ScheduleStatusPending,
			PaidAmount:  decimal.Zero,
			Description: e.Description,
		}
	}
	return fresh, nil
}

// NewInvoice creates a new invoice with computed totals. The optional
// schedule is validated against the computed total.
func NewInvoice(customerID uuid.UUID, items LineItems, discount decimal.Decimal, dueDate time.Time, schedule ScheduleEntries) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer reference cannot be empty")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError(ErrCodeInvalidAmount, "Discount cannot be negative")
	}
	if dueDate.IsZero() {
		dueDate = time.Now()
	}

	subtotal, total := ComputeTotals(items, discount)

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             append(LineItems(nil), items...),
		Discount:          discount,
		Subtotal:          subtotal,
		Total:             total,
		Status:            InvoiceStatusUnpaid,
		DueDate:           dueDate,
		PaymentSchedule:   ScheduleEntries{},
		Payments:          Payments{},
	}

	if len(schedule) > 0 {
		fresh, err := validateSchedule(schedule, total)
		if err != nil {
			return nil, err
		}
		inv.PaymentSchedule = fresh
	}

	return inv, nil
}

// TotalPaid returns the aggregate amount of all recorded payments
func (inv *Invoice) TotalPaid() decimal.Decimal {
	return inv.Payments.Sum()
}

// Outstanding returns the amount still owed, floored at zero
func (inv *Invoice) Outstanding() decimal.Decimal {
	out := inv.Total.Sub(inv.TotalPaid())
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// Overpaid reports whether recorded payments exceed the current total
// beyond the epsilon tolerance. This can only happen after an item or
// discount edit shrank the total below what was already collected; it is
// surfaced as a warning, not prevented.
func (inv *Invoice) Overpaid() bool {
	return inv.TotalPaid().GreaterThan(inv.Total.Add(amountEpsilon))
}

// SetPaymentSchedule replaces the payment schedule wholesale. Every entry
// must have a positive amount and a due date, and the entries must sum to
// the invoice total within the epsilon tolerance. The operation is
// all-or-nothing: on failure the existing schedule is left untouched.
func (inv *Invoice) SetPaymentSchedule(entries ScheduleEntries) error {
	fresh, err := validateSchedule(entries, inv.Total)
	if err != nil {
		return err
	}
	inv.PaymentSchedule = fresh
	inv.Touch()
	return nil
}

// RecordPayment validates and records a payment against the invoice.
// If scheduleIndex targets an installment, that entry's paid amount and
// status are updated; the payment may not push the entry's paid amount
// past its scheduled amount, and untargeted entries are never touched.
// The invoice status is recomputed from the new aggregate paid amount.
// Returns the created payment record; the invoice is unchanged on failure.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, method PaymentMethod, note string, scheduleIndex *int) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError(ErrCodeInvalidAmount, "Payment amount must be positive")
	}
	if method != "" && !method.IsValid() {
		return nil, shared.NewDomainError(ErrCodeInvalidAmount, "Payment method is not valid")
	}

	totalPaid := inv.TotalPaid()
	if totalPaid.Add(amount).GreaterThan(inv.Total.Add(amountEpsilon)) {
		return nil, NewPaymentExceedsTotalError(totalPaid, amount, inv.Total)
	}

	if scheduleIndex != nil {
		idx := *scheduleIndex
		if idx < 0 || idx >= len(inv.PaymentSchedule) {
			return nil, NewInvalidScheduleIndexError(idx, len(inv.PaymentSchedule))
		}
		newPaid := inv.PaymentSchedule[idx].PaidAmount.Add(amount)
		if newPaid.GreaterThan(inv.PaymentSchedule[idx].Amount.Add(amountEpsilon)) {
			return nil, NewScheduleEntryOverpaidError(idx, newPaid, inv.PaymentSchedule[idx].Amount)
		}
		now := time.Now()
		schedule := make(ScheduleEntries, len(inv.PaymentSchedule))
		copy(schedule, inv.PaymentSchedule)
		entry := schedule[idx]
		entry.PaidAmount = newPaid
		entry.PaidDate = &now
		if entry.IsPaid() {
			entry.Status = ScheduleStatusPaid
		}
		schedule[idx] = entry
		inv.PaymentSchedule = schedule
	}

	payment := NewPayment(inv.ID, amount, method, note, scheduleIndex)
	inv.Payments = append(inv.Payments, *payment)
	inv.Status = DeriveStatus(inv.Total, totalPaid.Add(amount))
	inv.Touch()

	return payment, nil
}

// RefreshOverdueStatuses transitions pending schedule entries whose due date
// has passed asOf to overdue. Idempotent, and paid entries never regress.
// Invoked lazily before reads and saves since the system has no scheduler.
// Returns true if any entry changed.
func (inv *Invoice) RefreshOverdueStatuses(asOf time.Time) bool {
	changed := false
	schedule := make(ScheduleEntries, len(inv.PaymentSchedule))
	copy(schedule, inv.PaymentSchedule)
	for i, e := range schedule {
		if e.Status == ScheduleStatusPending && e.DueDate.Before(asOf) {
			e.Status = ScheduleStatusOverdue
			schedule[i] = e
			changed = true
		}
	}
	if changed {
		inv.PaymentSchedule = schedule
	}
	return changed
}

// UpdateParams carries the optional fields of an invoice edit. Nil fields
// are left unchanged.
type UpdateParams struct {
	Items    LineItems
	Discount *decimal.Decimal
	DueDate  *time.Time
	Schedule *ScheduleEntries
}

// Update applies an item/discount/due-date/schedule edit. Totals are
// recomputed when items or discount change, and a supplied schedule is
// re-validated against the new total. Already-recorded payments are never
// rescaled; if the edit shrinks the total below the collected amount the
// invoice reports Overpaid() and the caller is expected to surface a
// warning.
func (inv *Invoice) Update(params UpdateParams) error {
	items := inv.Items
	if params.Items != nil {
		if err := validateItems(params.Items); err != nil {
			return err
		}
		items = params.Items
	}
	discount := inv.Discount
	if params.Discount != nil {
		if params.Discount.IsNegative() {
			return shared.NewDomainError(ErrCodeInvalidAmount, "Discount cannot be negative")
		}
		discount = *params.Discount
	}

	subtotal, total := ComputeTotals(items, discount)

	var schedule ScheduleEntries
	if params.Schedule != nil {
		fresh, err := validateSchedule(*params.Schedule, total)
		if err != nil {
			return err
		}
		schedule = fresh
	}

	inv.Items = append(LineItems(nil), items...)
	inv.Discount = discount
	inv.Subtotal = subtotal
	inv.Total = total
	if params.DueDate != nil {
		inv.DueDate = *params.DueDate
	}
	if schedule != nil {
		inv.PaymentSchedule = schedule
	}
	inv.Status = DeriveStatus(inv.Total, inv.TotalPaid())
	inv.Touch()

	return nil
}
