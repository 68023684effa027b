package report

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const topProductLimit = 5

// ReportService aggregates read-only business reports across contexts
type ReportService struct {
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	expenseRepo  finance.ExpenseRepository
}

// NewReportService creates a new ReportService
func NewReportService(
	saleRepo trade.SaleRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	expenseRepo finance.ExpenseRepository,
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		expenseRepo:  expenseRepo,
	}
}

// TopProductResponse is one row of the top-products ranking
type TopProductResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// SummaryResponse is the business summary report
type SummaryResponse struct {
	TotalSales     decimal.Decimal      `json:"total_sales"`
	TotalExpenses  decimal.Decimal      `json:"total_expenses"`
	CustomerCount  int64                `json:"customer_count"`
	ProductCount   int64                `json:"product_count"`
	InventoryValue decimal.Decimal      `json:"inventory_value"`
	TopProducts    []TopProductResponse `json:"top_products"`
}

// DailySalesFilter defines the optional range/product filters of the daily series
type DailySalesFilter struct {
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	ProductID *uuid.UUID `form:"product_id"`
}

// DailySalesResponse is one day of the sales time series
type DailySalesResponse struct {
	Day   string          `json:"day"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// GetSummary builds the business summary report
func (s *ReportService) GetSummary(ctx context.Context) (*SummaryResponse, error) {
	totalSales, err := s.saleRepo.TotalSales(ctx)
	if err != nil {
		return nil, err
	}
	totalExpenses, err := s.expenseRepo.TotalExpenses(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	inventoryValue, err := s.productRepo.InventoryValue(ctx)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.saleRepo.TopProducts(ctx, topProductLimit)
	if err != nil {
		return nil, err
	}

	top := make([]TopProductResponse, len(topProducts))
	for i, p := range topProducts {
		top[i] = TopProductResponse{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Quantity:    p.Quantity,
			Total:       p.Total,
		}
	}

	return &SummaryResponse{
		TotalSales:     totalSales,
		TotalExpenses:  totalExpenses,
		CustomerCount:  customerCount,
		ProductCount:   productCount,
		InventoryValue: inventoryValue,
		TopProducts:    top,
	}, nil
}

// GetDailySales builds the daily sales series
func (s *ReportService) GetDailySales(ctx context.Context, filter DailySalesFilter) ([]DailySalesResponse, error) {
	series, err := s.saleRepo.SalesByDay(ctx, filter.FromDate, filter.ToDate, filter.ProductID)
	if err != nil {
		return nil, err
	}

	responses := make([]DailySalesResponse, len(series))
	for i, d := range series {
		responses[i] = DailySalesResponse{
			Day:   d.Day.Format("2006-01-02"),
			Count: d.Count,
			Total: d.Total,
		}
	}
	return responses, nil
}
