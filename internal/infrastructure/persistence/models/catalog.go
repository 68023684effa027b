package models

import (
	"github.com/bizledger/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root
type ProductModel struct {
	AggregateModel
	Name     string          `gorm:"type:varchar(255);not null;index"`
	SKU      string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	Quantity int64           `gorm:"not null;default:0"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Category string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		SKU:               m.SKU,
		Quantity:          m.Quantity,
		Price:             m.Price,
		Category:          m.Category,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Quantity = p.Quantity
	m.Price = p.Price
	m.Category = p.Category
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
