package finance

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseRequest is the payload for creating an expense record
type CreateExpenseRequest struct {
	Category string    `json:"category" binding:"required"`
	Amount   string    `json:"amount" binding:"required"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
}

// UpdateExpenseRequest is the payload for editing an expense record
type UpdateExpenseRequest struct {
	Category *string    `json:"category"`
	Amount   *string    `json:"amount"`
	Date     *time.Time `json:"date"`
	Note     *string    `json:"note"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search    string     `form:"search"`
	Category  string     `form:"category"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	SortBy    string     `form:"sort_by"`
	SortOrder string     `form:"sort_order"`
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toExpenseResponse(e *finance.ExpenseRecord) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func parseExpenseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid decimal value for amount")
	}
	return d, nil
}

// CreateExpense creates a new expense record
func (s *ExpenseService) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	amount, err := parseExpenseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	expense, err := finance.NewExpenseRecord(req.Category, amount, req.Date, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// GetExpense returns an expense record by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expense records with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter ExpenseListFilter) (shared.Paginated[ExpenseResponse], error) {
	domainFilter := finance.ExpenseFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Category != "" {
		domainFilter.Category = &filter.Category
	}

	page, err := s.expenseRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ExpenseResponse]{}, err
	}

	responses := make([]ExpenseResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toExpenseResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// UpdateExpense applies a partial edit to an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}

	params := finance.UpdateParams{
		Category: req.Category,
		Date:     req.Date,
		Note:     req.Note,
	}
	if req.Amount != nil {
		amount, err := parseExpenseAmount(*req.Amount)
		if err != nil {
			return nil, err
		}
		params.Amount = &amount
	}

	if err := expense.Update(params); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense removes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return shared.NewDomainError("NOT_FOUND", "Expense record not found")
	}
	return s.expenseRepo.Delete(ctx, id)
}
