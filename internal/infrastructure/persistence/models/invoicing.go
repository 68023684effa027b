package models

import (
	"time"

	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// Line items and the payment schedule are stored as JSONB value objects;
// payment records live in their own table and are attached by the repository.
type InvoiceModel struct {
	AggregateModel
	CustomerID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Items           invoicing.LineItems       `gorm:"type:jsonb;not null"`
	Discount        decimal.Decimal           `gorm:"type:numeric(14,2);not null;default:0"`
	Subtotal        decimal.Decimal           `gorm:"type:numeric(14,2);not null"`
	Total           decimal.Decimal           `gorm:"type:numeric(14,2);not null"`
	Status          string                    `gorm:"type:varchar(20);not null;index"`
	DueDate         time.Time                 `gorm:"not null;index"`
	PaymentSchedule invoicing.ScheduleEntries `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
// Payments are loaded separately and must be attached by the caller.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	return &invoicing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Items:             m.Items,
		Discount:          m.Discount,
		Subtotal:          m.Subtotal,
		Total:             m.Total,
		Status:            invoicing.InvoiceStatus(m.Status),
		DueDate:           m.DueDate,
		PaymentSchedule:   m.PaymentSchedule,
		Payments:          invoicing.Payments{},
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.CustomerID = inv.CustomerID
	m.Items = inv.Items
	m.Discount = inv.Discount
	m.Subtotal = inv.Subtotal
	m.Total = inv.Total
	m.Status = inv.Status.String()
	m.DueDate = inv.DueDate
	m.PaymentSchedule = inv.PaymentSchedule
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// PaymentModel is the persistence model for invoice payment records
type PaymentModel struct {
	BaseModel
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Date          time.Time       `gorm:"not null;index"`
	Method        string          `gorm:"type:varchar(10);not null;index"`
	Note          string          `gorm:"type:text"`
	ScheduleIndex *int            `gorm:""`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *invoicing.Payment {
	return &invoicing.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceID:     m.InvoiceID,
		Amount:        m.Amount,
		Date:          m.Date,
		Method:        invoicing.PaymentMethod(m.Method),
		Note:          m.Note,
		ScheduleIndex: m.ScheduleIndex,
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *invoicing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Date = p.Date
	m.Method = p.Method.String()
	m.Note = p.Note
	m.ScheduleIndex = p.ScheduleIndex
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *invoicing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
