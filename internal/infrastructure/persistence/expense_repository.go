package persistence

import (
	"context"

	"github.com/gestock/backend/internal/domain/shop"
	"github.com/gestock/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpenseRepository implements shop.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByTenant returns one page of the tenant's expenses, newest first, with
// the total count
func (r *GormExpenseRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shop.Filter) ([]shop.Expense, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExpenseModel{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var expenseModels []models.ExpenseModel
	if err := query.
		Order("date DESC").
		Offset(pageOffset(filter)).
		Limit(pageLimit(filter)).
		Find(&expenseModels).Error; err != nil {
		return nil, 0, err
	}

	expenses := make([]shop.Expense, 0, len(expenseModels))
	for i := range expenseModels {
		expenses = append(expenses, *expenseModels[i].ToDomain())
	}
	return expenses, total, nil
}

// Save persists a new expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *shop.Expense) error {
	var model models.ExpenseModel
	model.FromDomain(expense)
	return r.db.WithContext(ctx).Create(&model).Error
}
