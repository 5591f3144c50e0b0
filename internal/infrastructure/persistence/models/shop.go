package models

import (
	"time"

	"github.com/gestock/backend/internal/domain/shop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseModel is the persistence model for the Purchase domain entity
type PurchaseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_purchases_tenant"`
	Reference string          `gorm:"type:varchar(100);not null"`
	Supplier  string          `gorm:"type:varchar(200)"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"type:varchar(10);not null"`
	Date      time.Time       `gorm:"not null;index"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity
func (m *PurchaseModel) ToDomain() *shop.Purchase {
	return &shop.Purchase{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Reference: m.Reference,
		Supplier:  m.Supplier,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Date:      m.Date,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity
func (m *PurchaseModel) FromDomain(p *shop.Purchase) {
	m.ID = p.ID
	m.TenantID = p.TenantID
	m.Reference = p.Reference
	m.Supplier = p.Supplier
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.Date = p.Date
	m.Notes = p.Notes
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// SaleModel is the persistence model for the Sale domain entity
type SaleModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_sales_tenant"`
	Reference string          `gorm:"type:varchar(100);not null"`
	Customer  string          `gorm:"type:varchar(200)"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"type:varchar(10);not null"`
	Date      time.Time       `gorm:"not null;index"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale entity
func (m *SaleModel) ToDomain() *shop.Sale {
	return &shop.Sale{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Reference: m.Reference,
		Customer:  m.Customer,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Date:      m.Date,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Sale entity
func (m *SaleModel) FromDomain(s *shop.Sale) {
	m.ID = s.ID
	m.TenantID = s.TenantID
	m.Reference = s.Reference
	m.Customer = s.Customer
	m.Amount = s.Amount
	m.Currency = s.Currency
	m.Date = s.Date
	m.Notes = s.Notes
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}

// ExpenseModel is the persistence model for the Expense domain entity
type ExpenseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_tenant"`
	Label     string          `gorm:"type:varchar(200);not null"`
	Category  string          `gorm:"type:varchar(100)"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency  string          `gorm:"type:varchar(10);not null"`
	Date      time.Time       `gorm:"not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense entity
func (m *ExpenseModel) ToDomain() *shop.Expense {
	return &shop.Expense{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Label:     m.Label,
		Category:  m.Category,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Expense entity
func (m *ExpenseModel) FromDomain(e *shop.Expense) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.Label = e.Label
	m.Category = e.Category
	m.Amount = e.Amount
	m.Currency = e.Currency
	m.Date = e.Date
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}
