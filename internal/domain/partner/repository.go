package partner

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerFilter carries list-query options for customers
type CustomerFilter struct {
	shared.Filter
	Status *CustomerStatus
}

// CustomerRepository persists customers
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, filter CustomerFilter) (shared.Paginated[Customer], error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
