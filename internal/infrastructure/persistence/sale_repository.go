package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/bizledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements trade.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// Save upserts the sale row
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByID finds a sale by ID. Returns (nil, nil) when absent.
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List lists sales with filtering and pagination
func (r *GormSaleRepository) List(ctx context.Context, filter trade.SaleFilter) (shared.Paginated[trade.Sale], error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[trade.Sale]{}, err
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var saleModels []models.SaleModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&saleModels).Error; err != nil {
		return shared.Paginated[trade.Sale]{}, err
	}

	sales := make([]trade.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	return shared.NewPaginated(sales, total, page, filter.Limit()), nil
}

// Delete removes a sale row
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalSales returns the sum of sale totals
func (r *GormSaleRepository) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Value decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("COALESCE(SUM(total_amount), 0) as value").
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Value, nil
}

// SalesByDay returns the per-day sale count and total. Line-item filtering
// by product searches the JSONB items column.
func (r *GormSaleRepository) SalesByDay(ctx context.Context, from, to *time.Time, productID *uuid.UUID) ([]trade.DailySales, error) {
	query := r.db.WithContext(ctx).
		Model(&models.SaleModel{}).
		Select("DATE_TRUNC('day', created_at) as day, count(*) as count, COALESCE(SUM(total_amount), 0) as total").
		Group("day").
		Order("day ASC")

	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	if productID != nil {
		query = query.Where("items @> ?", fmt.Sprintf(`[{"productRef":%q}]`, productID.String()))
	}

	var rows []struct {
		Day   time.Time
		Count int64
		Total decimal.Decimal
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	series := make([]trade.DailySales, len(rows))
	for i, row := range rows {
		series[i] = trade.DailySales{Day: row.Day, Count: row.Count, Total: row.Total}
	}
	return series, nil
}

// TopProducts ranks products by quantity sold, unnesting the JSONB items
func (r *GormSaleRepository) TopProducts(ctx context.Context, limit int) ([]trade.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
		Total       decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(item->>'productRef')::uuid AS product_id,
			MAX(item->>'productName') AS product_name,
			SUM((item->>'quantity')::bigint) AS quantity,
			COALESCE(SUM((item->>'quantity')::numeric * (item->>'unitPrice')::numeric), 0) AS total
		FROM sales, jsonb_array_elements(items) AS item
		GROUP BY product_id
		ORDER BY quantity DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	top := make([]trade.ProductSales, len(rows))
	for i, row := range rows {
		top[i] = trade.ProductSales{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Total:       row.Total,
		}
	}
	return top, nil
}
