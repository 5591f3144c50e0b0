// Package shop implements the tenant-scoped business records: purchases
// (achats), sales (ventes) and expenses. Every operation resolves the tenant
// from the request context; a tenant id is never accepted from request data.
package shop

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/domain/shop"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// currentTenantID resolves the bound tenant or fails. Shared by the three
// shop services.
func currentTenantID(ctx context.Context) (uuid.UUID, error) {
	tenantID, ok := tenantctx.Current(ctx)
	if !ok {
		return uuid.Nil, shared.ErrTenantNotBound
	}
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil, shared.ErrInvalidTenant
	}
	return id, nil
}

// PurchaseService handles purchase records
type PurchaseService struct {
	purchases shop.PurchaseRepository
	logger    *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(purchases shop.PurchaseRepository, logger *zap.Logger) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{purchases: purchases, logger: logger}
}

// Create records a purchase for the bound tenant
func (s *PurchaseService) Create(ctx context.Context, input CreatePurchaseInput) (*PurchaseInfo, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	purchase, err := shop.NewPurchase(tenantID, input.Reference, input.Supplier, input.Amount, input.Currency, date)
	if err != nil {
		return nil, err
	}
	purchase.Notes = input.Notes

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reference", purchase.Reference),
		zap.String("amount", purchase.Amount.String()))

	info := NewPurchaseInfo(purchase)
	return &info, nil
}

// List returns one page of the bound tenant's purchases
func (s *PurchaseService) List(ctx context.Context, input ListInput) ([]PurchaseInfo, *ListMeta, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, nil, err
	}

	filter := input.filter()
	purchases, total, err := s.purchases.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]PurchaseInfo, 0, len(purchases))
	for i := range purchases {
		infos = append(infos, NewPurchaseInfo(&purchases[i]))
	}
	return infos, &ListMeta{Page: filter.Page, PageSize: filter.PageSize, Total: total}, nil
}

// ExportCSV renders all of the bound tenant's purchases as a CSV document.
// Plan-gated at the HTTP layer; the export itself is plan-agnostic.
func (s *PurchaseService) ExportCSV(ctx context.Context) ([]byte, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchases.FindAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"reference", "supplier", "amount", "currency", "date", "notes"}); err != nil {
		return nil, err
	}
	for i := range purchases {
		p := &purchases[i]
		record := []string{
			p.Reference,
			p.Supplier,
			p.Amount.String(),
			p.Currency,
			p.Date.Format(time.RFC3339),
			p.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	s.logger.Info("purchases exported",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("rows", len(purchases)))
	return buf.Bytes(), nil
}
