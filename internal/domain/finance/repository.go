package finance

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilter carries list-query options for expense records
type ExpenseFilter struct {
	shared.Filter
	Category *string
	FromDate *time.Time
	ToDate   *time.Time
}

// ExpenseRepository persists expense records
type ExpenseRepository interface {
	Save(ctx context.Context, expense *ExpenseRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)
	List(ctx context.Context, filter ExpenseFilter) (shared.Paginated[ExpenseRecord], error)
	Delete(ctx context.Context, id uuid.UUID) error
	TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
}
