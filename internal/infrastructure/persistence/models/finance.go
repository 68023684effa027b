package models

import (
	"time"

	"github.com/bizledger/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// ExpenseModel is the persistence model for expense records
type ExpenseModel struct {
	AggregateModel
	Category string          `gorm:"type:varchar(100);not null;index"`
	Amount   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Date     time.Time       `gorm:"not null;index"`
	Note     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain ExpenseRecord
func (m *ExpenseModel) ToDomain() *finance.ExpenseRecord {
	return &finance.ExpenseRecord{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Category:          m.Category,
		Amount:            m.Amount,
		Date:              m.Date,
		Note:              m.Note,
	}
}

// FromDomain populates the persistence model from a domain ExpenseRecord
func (m *ExpenseModel) FromDomain(e *finance.ExpenseRecord) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Category = e.Category
	m.Amount = e.Amount
	m.Date = e.Date
	m.Note = e.Note
}

// ExpenseModelFromDomain creates a new persistence model from a domain ExpenseRecord
func ExpenseModelFromDomain(e *finance.ExpenseRecord) *ExpenseModel {
	m := &ExpenseModel{}
	m.FromDomain(e)
	return m
}
