package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// Save upserts the expense row
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	model := models.ExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByID finds an expense record by ID. Returns (nil, nil) when absent.
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var model models.ExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List lists expense records with filtering and pagination
func (r *GormExpenseRepository) List(ctx context.Context, filter finance.ExpenseFilter) (shared.Paginated[finance.ExpenseRecord], error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("category ILIKE ? OR note ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[finance.ExpenseRecord]{}, err
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var expenseModels []models.ExpenseModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&expenseModels).Error; err != nil {
		return shared.Paginated[finance.ExpenseRecord]{}, err
	}

	expenses := make([]finance.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = *expenseModels[i].ToDomain()
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	return shared.NewPaginated(expenses, total, page, filter.Limit()), nil
}

// Delete removes an expense row
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalExpenses returns the sum of expense amounts in the optional range
func (r *GormExpenseRepository) TotalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var row struct {
		Value decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) as value").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Value, nil
}
