package invoicing

import (
	"fmt"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Error codes raised by the invoicing domain. All are recoverable validation
// failures reported to the caller; none are process-fatal.
const (
	ErrCodeScheduleTotalMismatch = "SCHEDULE_TOTAL_MISMATCH"
	ErrCodeInvalidScheduleEntry  = "INVALID_SCHEDULE_ENTRY"
	ErrCodePaymentExceedsTotal   = "PAYMENT_EXCEEDS_TOTAL"
	ErrCodeInvalidScheduleIndex  = "INVALID_SCHEDULE_INDEX"
	ErrCodeInvalidAmount         = "INVALID_AMOUNT"
	ErrCodeInvalidLineItem       = "INVALID_LINE_ITEM"
)

// NewScheduleTotalMismatchError is raised when the scheduled installments do
// not sum to the invoice total within the epsilon tolerance.
func NewScheduleTotalMismatchError(scheduled, expected decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		ErrCodeScheduleTotalMismatch,
		fmt.Sprintf("Scheduled amount %s does not match invoice total %s", scheduled.StringFixed(2), expected.StringFixed(2)),
		map[string]any{
			"scheduled": scheduled.String(),
			"expected":  expected.String(),
		},
	)
}

// NewInvalidScheduleEntryError is raised when an installment has a
// non-positive amount or a missing due date.
func NewInvalidScheduleEntryError(index int, reason string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		ErrCodeInvalidScheduleEntry,
		fmt.Sprintf("Schedule entry %d is invalid: %s", index, reason),
		map[string]any{
			"index":  index,
			"reason": reason,
		},
	)
}

// NewScheduleEntryOverpaidError is raised when a targeted payment would push
// an installment's paid amount past its scheduled amount.
func NewScheduleEntryOverpaidError(index int, paid, amount decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		ErrCodeInvalidScheduleEntry,
		fmt.Sprintf("Paid amount %s cannot exceed scheduled amount %s for entry %d", paid.StringFixed(2), amount.StringFixed(2), index),
		map[string]any{
			"index":       index,
			"paid_amount": paid.String(),
			"amount":      amount.String(),
		},
	)
}

// NewPaymentExceedsTotalError is raised when recording a payment would push
// the aggregate paid amount past the invoice total.
func NewPaymentExceedsTotalError(totalPaid, amount, total decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		ErrCodePaymentExceedsTotal,
		fmt.Sprintf("Payment of %s would exceed invoice total %s (already paid %s)", amount.StringFixed(2), total.StringFixed(2), totalPaid.StringFixed(2)),
		map[string]any{
			"total_paid": totalPaid.String(),
			"amount":     amount.String(),
			"total":      total.String(),
		},
	)
}

// NewInvalidScheduleIndexError is raised when a payment targets a schedule
// entry position that does not exist.
func NewInvalidScheduleIndexError(index, scheduleLength int) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		ErrCodeInvalidScheduleIndex,
		fmt.Sprintf("Schedule index %d is out of range (schedule has %d entries)", index, scheduleLength),
		map[string]any{
			"index":           index,
			"schedule_length": scheduleLength,
		},
	)
}
