package trade

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleFilter carries list-query options for sales
type SaleFilter struct {
	shared.Filter
	Status   *SaleStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// DailySales is one day of the sales time series
type DailySales struct {
	Day   time.Time       `json:"day"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ProductSales is an aggregate of quantity sold per product
type ProductSales struct {
	ProductID   uuid.UUID       `json:"productRef"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// SaleRepository persists sales and serves the report aggregations
type SaleRepository interface {
	Save(ctx context.Context, sale *Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	List(ctx context.Context, filter SaleFilter) (shared.Paginated[Sale], error)
	Delete(ctx context.Context, id uuid.UUID) error
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	SalesByDay(ctx context.Context, from, to *time.Time, productID *uuid.UUID) ([]DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
}
