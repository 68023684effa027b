package models

import (
	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer aggregate root
type CustomerModel struct {
	AggregateModel
	Name    string              `gorm:"type:varchar(255);not null;index"`
	Email   string              `gorm:"type:varchar(255);index"`
	Phone   string              `gorm:"type:varchar(50)"`
	Company string              `gorm:"type:varchar(255)"`
	GSTIN   string              `gorm:"type:varchar(20)"`
	Address valueobject.Address `gorm:"type:jsonb"`
	Status  string              `gorm:"type:varchar(20);not null;index"`
	Notes   string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Company:           m.Company,
		GSTIN:             m.GSTIN,
		Address:           m.Address,
		Status:            partner.CustomerStatus(m.Status),
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Company = c.Company
	m.GSTIN = c.GSTIN
	m.Address = c.Address
	m.Status = c.Status.String()
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
