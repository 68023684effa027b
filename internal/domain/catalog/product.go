package catalog

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is the aggregate root of the catalog context. Quantity is the
// on-hand stock level, adjusted by sales.
type Product struct {
	shared.BaseAggregateRoot
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
}

// NewProduct creates a new product. Name and SKU are required; SKU uniqueness
// is enforced by the repository.
func NewProduct(name, sku string, quantity int64, price decimal.Decimal, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product SKU cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product quantity cannot be negative")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Quantity:          quantity,
		Price:             price,
		Category:          category,
	}, nil
}

// UpdateParams carries the optional fields of a product edit
type UpdateParams struct {
	Name     *string
	SKU      *string
	Quantity *int64
	Price    *decimal.Decimal
	Category *string
}

// Update applies a partial edit to the product
func (p *Product) Update(params UpdateParams) error {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
		}
		p.Name = name
	}
	if params.SKU != nil {
		sku := strings.TrimSpace(*params.SKU)
		if sku == "" {
			return shared.NewDomainError("INVALID_PRODUCT", "Product SKU cannot be empty")
		}
		p.SKU = sku
	}
	if params.Quantity != nil {
		if *params.Quantity < 0 {
			return shared.NewDomainError("INVALID_PRODUCT", "Product quantity cannot be negative")
		}
		p.Quantity = *params.Quantity
	}
	if params.Price != nil {
		if params.Price.IsNegative() {
			return shared.NewDomainError("INVALID_PRODUCT", "Product price cannot be negative")
		}
		p.Price = *params.Price
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	p.Touch()
	return nil
}

// DeductStock reduces on-hand quantity for a sale. Fails without mutating
// when stock is insufficient.
func (p *Product) DeductStock(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Deduction quantity must be positive")
	}
	if qty > p.Quantity {
		return shared.NewDomainErrorWithDetails(
			shared.ErrInsufficientStock.Code,
			"Insufficient stock for "+p.Name,
			map[string]any{"available": p.Quantity, "requested": qty},
		)
	}
	p.Quantity -= qty
	p.Touch()
	return nil
}

// RestockStock returns quantity to stock, used when a sale is deleted
func (p *Product) RestockStock(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_PRODUCT", "Restock quantity must be positive")
	}
	p.Quantity += qty
	p.Touch()
	return nil
}

// StockValue returns price x on-hand quantity
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}
