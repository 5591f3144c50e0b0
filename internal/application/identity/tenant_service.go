package identity

import (
	"context"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantService exposes read operations on the caller's own tenant. These are
// reachable even when the subscription has lapsed, so that a client can still
// display the account state and point at the payment flow.
type TenantService struct {
	tenants identity.TenantRepository
	logger  *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenants identity.TenantRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{tenants: tenants, logger: logger}
}

// CurrentTenant returns the tenant bound to the request context
func (s *TenantService) CurrentTenant(ctx context.Context) (*TenantInfo, error) {
	tenant, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return NewTenantInfo(tenant, time.Now()), nil
}

// RenameTenant updates the tenant's display name. Admin only; enforced by the
// HTTP layer.
func (s *TenantService) RenameTenant(ctx context.Context, name string) (*TenantInfo, error) {
	tenant, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}

	if err := tenant.Rename(name); err != nil {
		return nil, err
	}
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant renamed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name))
	return NewTenantInfo(tenant, time.Now()), nil
}

func (s *TenantService) resolve(ctx context.Context) (*identity.Tenant, error) {
	tenantID, ok := tenantctx.Current(ctx)
	if !ok {
		return nil, shared.ErrTenantNotBound
	}
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, shared.ErrInvalidTenant
	}
	return s.tenants.FindByID(ctx, id)
}
