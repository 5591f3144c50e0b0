package shop

import (
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents an operating expense recorded by a tenant
type Expense struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Label     string
	Category  string
	Amount    decimal.Decimal
	Currency  string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExpense creates an expense for the given tenant
func NewExpense(tenantID uuid.UUID, label, category string, amount decimal.Decimal, currency string, date time.Time) (*Expense, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Expense label is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	if currency == "" {
		currency = "XOF"
	}

	now := time.Now()
	return &Expense{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Label:     label,
		Category:  strings.TrimSpace(category),
		Amount:    amount,
		Currency:  currency,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
