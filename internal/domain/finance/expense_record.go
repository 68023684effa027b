package finance

import (
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRecord is a standalone outgoing-money record, kept outside the
// invoicing ledger
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Note     string          `json:"note,omitempty"`
}

// NewExpenseRecord creates a new expense dated now when no date is given
func NewExpenseRecord(category string, amount decimal.Decimal, date time.Time, note string) (*ExpenseRecord, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense category cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_EXPENSE", "Expense amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &ExpenseRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Amount:            amount,
		Date:              date,
		Note:              note,
	}, nil
}

// UpdateParams carries the optional fields of an expense edit
type UpdateParams struct {
	Category *string
	Amount   *decimal.Decimal
	Date     *time.Time
	Note     *string
}

// Update applies a partial edit to the expense record
func (e *ExpenseRecord) Update(params UpdateParams) error {
	if params.Category != nil {
		category := strings.TrimSpace(*params.Category)
		if category == "" {
			return shared.NewDomainError("INVALID_EXPENSE", "Expense category cannot be empty")
		}
		e.Category = category
	}
	if params.Amount != nil {
		if !params.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_EXPENSE", "Expense amount must be positive")
		}
		e.Amount = *params.Amount
	}
	if params.Date != nil {
		e.Date = *params.Date
	}
	if params.Note != nil {
		e.Note = *params.Note
	}
	e.Touch()
	return nil
}
