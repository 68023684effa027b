package invoicing

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter carries list-query options for invoices
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// PaymentFilter carries list-query options for payment records
type PaymentFilter struct {
	shared.Filter
	InvoiceID *uuid.UUID
	Method    *PaymentMethod
	DateFrom  *time.Time
	DateTo    *time.Time
}

// InvoiceRepository persists invoices. FindByID and List return invoices
// with their payment records loaded so derived values can be computed.
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) (shared.Paginated[Invoice], error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[InvoiceStatus]int64, error)
}

// PaymentRepository persists payment records. Payments are append-only;
// DeleteByInvoiceID exists solely for the invoice delete cascade.
type PaymentRepository interface {
	Append(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, filter PaymentFilter) (shared.Paginated[Payment], error)
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (Payments, error)
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
