package catalog

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter carries list-query options for products
type ProductFilter struct {
	shared.Filter
	Category *string
}

// ProductRepository persists products. Save enforces SKU uniqueness and
// returns shared.ErrAlreadyExists on a duplicate.
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context, filter ProductFilter) (shared.Paginated[Product], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
}
