package shop

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/shop"
	"go.uber.org/zap"
)

// ExpenseService handles expense records
type ExpenseService struct {
	expenses shop.ExpenseRepository
	logger   *zap.Logger
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenses shop.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{expenses: expenses, logger: logger}
}

// Create records an expense for the bound tenant
func (s *ExpenseService) Create(ctx context.Context, input CreateExpenseInput) (*ExpenseInfo, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	expense, err := shop.NewExpense(tenantID, input.Label, input.Category, input.Amount, input.Currency, date)
	if err != nil {
		return nil, err
	}

	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("label", expense.Label),
		zap.String("amount", expense.Amount.String()))

	info := NewExpenseInfo(expense)
	return &info, nil
}

// List returns one page of the bound tenant's expenses
func (s *ExpenseService) List(ctx context.Context, input ListInput) ([]ExpenseInfo, *ListMeta, error) {
	tenantID, err := currentTenantID(ctx)
	if err != nil {
		return nil, nil, err
	}

	filter := input.filter()
	expenses, total, err := s.expenses.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, nil, err
	}

	infos := make([]ExpenseInfo, 0, len(expenses))
	for i := range expenses {
		infos = append(infos, NewExpenseInfo(&expenses[i]))
	}
	return infos, &ListMeta{Page: filter.Page, PageSize: filter.PageSize, Total: total}, nil
}
