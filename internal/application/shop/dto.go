package shop

import (
	"time"

	"github.com/gestock/backend/internal/domain/shop"
	"github.com/shopspring/decimal"
)

// ListInput holds pagination parameters shared by the list operations
type ListInput struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

func (in ListInput) filter() shop.Filter {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return shop.Filter{Page: page, PageSize: size}
}

// ListMeta describes the page returned by a list operation
type ListMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// CreatePurchaseInput contains purchase creation data
type CreatePurchaseInput struct {
	Reference string          `json:"reference" binding:"required"`
	Supplier  string          `json:"supplier"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes"`
}

// PurchaseInfo is the purchase representation exposed to API clients
type PurchaseInfo struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference"`
	Supplier  string          `json:"supplier,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewPurchaseInfo maps a domain purchase to its API representation
func NewPurchaseInfo(p *shop.Purchase) PurchaseInfo {
	return PurchaseInfo{
		ID:        p.ID.String(),
		Reference: p.Reference,
		Supplier:  p.Supplier,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Date:      p.Date,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// CreateSaleInput contains sale creation data
type CreateSaleInput struct {
	Reference string          `json:"reference" binding:"required"`
	Customer  string          `json:"customer"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes"`
}

// SaleInfo is the sale representation exposed to API clients
type SaleInfo struct {
	ID        string          `json:"id"`
	Reference string          `json:"reference"`
	Customer  string          `json:"customer,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewSaleInfo maps a domain sale to its API representation
func NewSaleInfo(s *shop.Sale) SaleInfo {
	return SaleInfo{
		ID:        s.ID.String(),
		Reference: s.Reference,
		Customer:  s.Customer,
		Amount:    s.Amount,
		Currency:  s.Currency,
		Date:      s.Date,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

// CreateExpenseInput contains expense creation data
type CreateExpenseInput struct {
	Label    string          `json:"label" binding:"required"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
	Date     time.Time       `json:"date"`
}

// ExpenseInfo is the expense representation exposed to API clients
type ExpenseInfo struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Category  string          `json:"category,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewExpenseInfo maps a domain expense to its API representation
func NewExpenseInfo(e *shop.Expense) ExpenseInfo {
	return ExpenseInfo{
		ID:        e.ID.String(),
		Label:     e.Label,
		Category:  e.Category,
		Amount:    e.Amount,
		Currency:  e.Currency,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}
