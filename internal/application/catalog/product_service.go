package catalog

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductService provides application-level product operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	SKU      string `json:"sku" binding:"required"`
	Quantity int64  `json:"quantity" binding:"gte=0"`
	Price    string `json:"price" binding:"required"`
	Category string `json:"category"`
}

// UpdateProductRequest is the payload for editing a product
type UpdateProductRequest struct {
	Name     *string `json:"name"`
	SKU      *string `json:"sku"`
	Quantity *int64  `json:"quantity" binding:"omitempty,gte=0"`
	Price    *string `json:"price"`
	Category *string `json:"category"`
}

// ProductListFilter defines filtering options for product list queries
type ProductListFilter struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Quantity:  p.Quantity,
		Price:     p.Price,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid decimal value for price")
	}
	return d, nil
}

// CreateProduct creates a new product. The SKU must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.Quantity, price, req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return toProductResponse(product), nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	domainFilter := catalog.ProductFilter{}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Category != "" {
		domainFilter.Category = &filter.Category
	}

	page, err := s.productRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	responses := make([]ProductResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toProductResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// UpdateProduct applies a partial edit to a product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	params := catalog.UpdateParams{
		Name:     req.Name,
		SKU:      req.SKU,
		Quantity: req.Quantity,
		Category: req.Category,
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		params.Price = &price
	}
	if req.SKU != nil && *req.SKU != product.SKU {
		existing, err := s.productRepo.FindBySKU(ctx, *req.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this SKU already exists")
		}
	}

	if err := product.Update(params); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return s.productRepo.Delete(ctx, id)
}
