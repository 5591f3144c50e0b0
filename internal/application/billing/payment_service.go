// Package billing handles subscription renewal. Payment collection itself
// happens with an external mobile-money provider; this service records the
// confirmed outcome and extends the tenant's paid period.
package billing

import (
	"context"
	"time"

	appidentity "github.com/gestock/backend/internal/application/identity"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConfirmPaymentInput carries the external payment reference reported by the
// client after the provider confirmed the charge
type ConfirmPaymentInput struct {
	Reference string `json:"reference" binding:"required"`
}

// PaymentService extends tenant subscriptions after a confirmed payment.
// Wired with the cached tenant repository so the extension invalidates the
// tenant cache and the subscription gate sees the new expiry immediately.
type PaymentService struct {
	tenants identity.TenantRepository
	period  time.Duration
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service. period is how far one
// confirmed payment extends the expiry.
func NewPaymentService(tenants identity.TenantRepository, period time.Duration, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{tenants: tenants, period: period, logger: logger}
}

// Confirm extends the bound tenant's subscription by one period. Extending an
// expired tenant restarts from now; extending a live one stacks onto the
// current expiry, so paying early never loses time.
func (s *PaymentService) Confirm(ctx context.Context, input ConfirmPaymentInput) (*appidentity.TenantInfo, error) {
	tenantID, ok := tenantctx.Current(ctx)
	if !ok {
		return nil, shared.ErrTenantNotBound
	}
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, shared.ErrInvalidTenant
	}

	tenant, err := s.tenants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A nil expiry means the subscription never lapses. Extending it would
	// quietly turn an unlimited account into a limited one.
	if tenant.ExpiresAt == nil {
		return nil, shared.NewDomainError("PAYMENT_NOT_REQUIRED",
			"This account has an unlimited subscription; no payment is required.")
	}

	now := time.Now()
	tenant.ExtendSubscription(now, s.period)

	if err := s.tenants.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("subscription extended",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("payment_reference", input.Reference),
		zap.Time("expires_at", *tenant.ExpiresAt))

	return appidentity.NewTenantInfo(tenant, now), nil
}
