package shop

import (
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale represents a sale (vente) recorded by a tenant
type Sale struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Reference string
	Customer  string
	Amount    decimal.Decimal
	Currency  string
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSale creates a sale for the given tenant
func NewSale(tenantID uuid.UUID, reference, customer string, amount decimal.Decimal, currency string, date time.Time) (*Sale, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Sale reference is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale amount cannot be negative")
	}
	if currency == "" {
		currency = "XOF"
	}

	now := time.Now()
	return &Sale{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Reference: reference,
		Customer:  strings.TrimSpace(customer),
		Amount:    amount,
		Currency:  currency,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
