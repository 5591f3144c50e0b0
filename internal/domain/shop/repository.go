package shop

import (
	"context"

	"github.com/google/uuid"
)

// Filter holds common list parameters for tenant-partitioned queries
type Filter struct {
	Page     int
	PageSize int
}

// PurchaseRepository provides access to purchase records, always scoped to
// one tenant
type PurchaseRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Purchase, int64, error)
	FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]Purchase, error)
	Save(ctx context.Context, purchase *Purchase) error
}

// SaleRepository provides access to sale records, always scoped to one tenant
type SaleRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Sale, int64, error)
	Save(ctx context.Context, sale *Sale) error
}

// ExpenseRepository provides access to expense records, always scoped to one
// tenant
type ExpenseRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Expense, int64, error)
	Save(ctx context.Context, expense *Expense) error
}
