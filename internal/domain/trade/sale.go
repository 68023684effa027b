package trade

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus tracks whether a sale has been settled
type SaleStatus string

const (
	SaleStatusPending SaleStatus = "pending"
	SaleStatusPaid    SaleStatus = "paid"
	SaleStatusUnpaid  SaleStatus = "unpaid"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusPaid, SaleStatusUnpaid:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// SaleItem is one product line of a sale
type SaleItem struct {
	ProductID   uuid.UUID       `json:"productRef"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Subtotal returns quantity x unit price
func (si SaleItem) Subtotal() decimal.Decimal {
	return si.UnitPrice.Mul(decimal.NewFromInt(si.Quantity))
}

// SaleItems is a slice of SaleItem stored as JSONB
type SaleItems []SaleItem

// Value implements driver.Valuer for JSONB storage
func (s SaleItems) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB retrieval
func (s *SaleItems) Scan(value any) error {
	if value == nil {
		*s = SaleItems{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SaleItems: unsupported type")
	}
	if len(bytes) == 0 {
		*s = SaleItems{}
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Sale is the aggregate root of the trade context. Creating a sale deducts
// product stock in the application layer; InvoiceID links to an invoice
// raised from this sale, if any.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerName string          `json:"customerName"`
	Items        SaleItems       `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       SaleStatus      `json:"status"`
	InvoiceID    *uuid.UUID      `json:"invoiceRef,omitempty"`
}

// NewSale creates a new sale with the total computed from its items
func NewSale(customerName string, items SaleItems, status SaleStatus) (*Sale, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale customer name cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale must have at least one item")
	}
	for i := range items {
		if items[i].ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_SALE", "Sale item product reference cannot be empty")
		}
		if items[i].Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_SALE", "Sale item quantity must be positive")
		}
		if items[i].UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_SALE", "Sale item unit price cannot be negative")
		}
	}
	if status == "" {
		status = SaleStatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale status is not valid")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerName:      customerName,
		Items:             append(SaleItems(nil), items...),
		TotalAmount:       total,
		Status:            status,
	}, nil
}

// MarkStatus sets the settlement status
func (s *Sale) MarkStatus(status SaleStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_SALE", "Sale status is not valid")
	}
	s.Status = status
	s.Touch()
	return nil
}

// LinkInvoice records the invoice raised from this sale
func (s *Sale) LinkInvoice(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_SALE", "Invoice reference cannot be empty")
	}
	if s.InvoiceID != nil {
		return shared.NewDomainError("INVALID_STATE", "Sale is already linked to an invoice")
	}
	s.InvoiceID = &invoiceID
	s.Touch()
	return nil
}
