package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/shop"
	"github.com/gestock/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements shop.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByTenant returns one page of the tenant's purchases, newest first,
// with the total count
func (r *GormPurchaseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shop.Filter) ([]shop.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchaseModels []models.PurchaseModel
	if err := query.
		Order("date DESC").
		Offset(pageOffset(filter)).
		Limit(pageLimit(filter)).
		Find(&purchaseModels).Error; err != nil {
		return nil, 0, err
	}

	purchases := make([]shop.Purchase, 0, len(purchaseModels))
	for i := range purchaseModels {
		purchases = append(purchases, *purchaseModels[i].ToDomain())
	}
	return purchases, total, nil
}

// FindAllByTenant returns every purchase of the tenant, newest first. Used by
// the export operation.
func (r *GormPurchaseRepository) FindAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]shop.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}

	purchases := make([]shop.Purchase, 0, len(purchaseModels))
	for i := range purchaseModels {
		purchases = append(purchases, *purchaseModels[i].ToDomain())
	}
	return purchases, nil
}

// Save persists a new purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *shop.Purchase) error {
	var model models.PurchaseModel
	model.FromDomain(purchase)
	return r.db.WithContext(ctx).Create(&model).Error
}

// pageOffset computes the query offset from a filter, clamped at zero
func pageOffset(filter shop.Filter) int {
	offset := (filter.Page - 1) * pageLimit(filter)
	if offset < 0 {
		return 0
	}
	return offset
}

// pageLimit computes the query limit from a filter with a sane default
func pageLimit(filter shop.Filter) int {
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		return 20
	}
	return filter.PageSize
}
