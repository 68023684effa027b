package trade

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService provides application-level sale operations. Creating a sale
// deducts product stock; deleting one restocks it.
type SaleService struct {
	saleRepo    trade.SaleRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo trade.SaleRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{saleRepo: saleRepo, productRepo: productRepo, logger: logger}
}

// SaleItemRequest is one product line of a sale payload
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest is the payload for creating a sale
type CreateSaleRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	Items        []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Status       string            `json:"status"`
}

// UpdateSaleRequest is the payload for editing a sale's settlement status
type UpdateSaleRequest struct {
	Status string `json:"status" binding:"required"`
}

// SaleListFilter defines filtering options for sale list queries
type SaleListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	SortBy    string     `form:"sort_by"`
	SortOrder string     `form:"sort_order"`
}

// SaleItemResponse represents one sale line in API responses
type SaleItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID          `json:"id"`
	CustomerName string             `json:"customer_name"`
	Items        []SaleItemResponse `json:"items"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       string             `json:"status"`
	InvoiceID    *uuid.UUID         `json:"invoice_id,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func toSaleResponse(s *trade.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		}
	}
	return &SaleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		Items:        items,
		TotalAmount:  s.TotalAmount,
		Status:       s.Status.String(),
		InvoiceID:    s.InvoiceID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// CreateSale creates a sale, pricing items from the catalog and deducting
// stock. Stock is validated for every line before anything is deducted so
// an insufficient line leaves all products untouched.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	products := make([]*catalog.Product, len(req.Items))
	items := make(trade.SaleItems, len(req.Items))
	for i, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		if line.Quantity > product.Quantity {
			return nil, shared.NewDomainErrorWithDetails(
				shared.ErrInsufficientStock.Code,
				"Insufficient stock for "+product.Name,
				map[string]any{"product_id": product.ID.String(), "available": product.Quantity, "requested": line.Quantity},
			)
		}
		products[i] = product
		items[i] = trade.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		}
	}

	sale, err := trade.NewSale(req.CustomerName, items, trade.SaleStatus(req.Status))
	if err != nil {
		return nil, err
	}

	for i, product := range products {
		if err := product.DeductStock(req.Items[i].Quantity); err != nil {
			return nil, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.TotalAmount.String()),
		zap.Int("lines", len(sale.Items)),
	)
	return toSaleResponse(sale), nil
}

// GetSale returns a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}
	return toSaleResponse(sale), nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	domainFilter := trade.SaleFilter{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Status != "" {
		status := trade.SaleStatus(filter.Status)
		if !status.IsValid() {
			return shared.Paginated[SaleResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown sale status filter")
		}
		domainFilter.Status = &status
	}

	page, err := s.saleRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	responses := make([]SaleResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toSaleResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// UpdateSale changes a sale's settlement status
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Sale not found")
	}

	if err := sale.MarkStatus(trade.SaleStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// DeleteSale removes a sale and returns its quantities to stock
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return shared.NewDomainError("NOT_FOUND", "Sale not found")
	}

	for _, item := range sale.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			// product was deleted since the sale; nothing to restock
			continue
		}
		if err := product.RestockStock(item.Quantity); err != nil {
			return err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return err
		}
	}

	return s.saleRepo.Delete(ctx, id)
}
