package models

import (
	"github.com/bizledger/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root
type SaleModel struct {
	AggregateModel
	CustomerName string          `gorm:"type:varchar(255);not null;index"`
	Items        trade.SaleItems `gorm:"type:jsonb;not null"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status       string          `gorm:"type:varchar(20);not null;index"`
	InvoiceID    *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *trade.Sale {
	return &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerName:      m.CustomerName,
		Items:             m.Items,
		TotalAmount:       m.TotalAmount,
		Status:            trade.SaleStatus(m.Status),
		InvoiceID:         m.InvoiceID,
	}
}

// FromDomain populates the persistence model from a domain Sale
func (m *SaleModel) FromDomain(s *trade.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.CustomerName = s.CustomerName
	m.Items = s.Items
	m.TotalAmount = s.TotalAmount
	m.Status = s.Status.String()
	m.InvoiceID = s.InvoiceID
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}
