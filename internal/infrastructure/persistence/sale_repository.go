package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/shop"
	"github.com/gestock/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements shop.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByTenant returns one page of the tenant's sales, newest first, with the
// total count
func (r *GormSaleRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shop.Filter) ([]shop.Sale, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SaleModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var saleModels []models.SaleModel
	if err := query.
		Order("date DESC").
		Offset(pageOffset(filter)).
		Limit(pageLimit(filter)).
		Find(&saleModels).Error; err != nil {
		return nil, 0, err
	}

	sales := make([]shop.Sale, 0, len(saleModels))
	for i := range saleModels {
		sales = append(sales, *saleModels[i].ToDomain())
	}
	return sales, total, nil
}

// Save persists a new sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *shop.Sale) error {
	var model models.SaleModel
	model.FromDomain(sale)
	return r.db.WithContext(ctx).Create(&model).Error
}
