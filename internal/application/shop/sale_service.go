package shop

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// SaleService handles sale records
type SaleService struct {
	sales  shop.SaleRepository
	logger *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(sales shop.SaleRepository, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{sales: sales, logger: logger}
}

// Create records a sale for the bound tenant
func (s *SaleService) Create(ctx context.Context, input CreateSaleInput) (*SaleInfo, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	sale, err := shop.NewSale(tenantID, input.Reference, input.Customer, input.Amount, input.Currency, date)
	if err != nil {
		return nil, err
	}
	sale.Notes = input.Notes

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("reference", sale.Reference),
		zap.String("amount", sale.Amount.String()))

	info := NewSaleInfo(sale)
	return &info, nil
}

// List returns one page of the bound tenant's sales
func (s *SaleService) List(ctx context.Context, input ListInput) ([]SaleInfo, *ListMeta, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, nil, err
	}

	filter := input.filter()
	sales, total, err := s.sales.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]SaleInfo, 0, len(sales))
	for i := range sales {
		infos = append(infos, NewSaleInfo(&sales[i]))
	}
	return infos, &ListMeta{Page: filter.Page, PageSize: filter.PageSize, Total: total}, nil
}
