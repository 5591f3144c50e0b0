package shop

import (
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase represents a supplier purchase (achat) recorded by a tenant
type Purchase struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Reference string
	Supplier  string
	Amount    decimal.Decimal
	Currency  string
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPurchase creates a purchase for the given tenant
func NewPurchase(tenantID uuid.UUID, reference, supplier string, amount decimal.Decimal, currency string, date time.Time) (*Purchase, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Purchase reference is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase amount cannot be negative")
	}
	if currency == "" {
		currency = "XOF"
	}

	now := time.Now()
	return &Purchase{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Reference: reference,
		Supplier:  strings.TrimSpace(supplier),
		Amount:    amount,
		Currency:  currency,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
