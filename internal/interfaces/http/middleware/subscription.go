package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/interfaces/http/dto"
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionGateConfig configures the subscription gate
type SubscriptionGateConfig struct {
	// Tenants is the tenant lookup; in production the cached repository
	Tenants identity.TenantRepository
	// AllowPrefixes are path prefixes exempt from the gate. The payment
	// flow and the account endpoints must stay reachable for an expired
	// tenant to be able to renew.
	AllowPrefixes []string
	Logger        *zap.Logger
}

// DefaultAllowPrefixes are the routes an expired tenant keeps access to
func DefaultAllowPrefixes() []string {
	return []string{
		"/api/v1/auth",
		"/api/v1/payment",
		"/api/v1/tenant",
	}
}

// SubscriptionGate blocks requests from tenants whose paid period has
// lapsed. Requests without a bound tenant pass through untouched; identity
// enforcement is the job of the authentication stage and its guards, not
// this one. Deactivated tenants are refused outright.
func SubscriptionGate(cfg SubscriptionGateConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	allow := cfg.AllowPrefixes
	if allow == nil {
		allow = DefaultAllowPrefixes()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range allow {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tenantID, ok := tenantctx.Current(c.Request.Context())
		if !ok {
			c.Next()
			return
		}

		id, err := uuid.Parse(tenantID)
		if err != nil {
			log.Warn("bound tenant id is malformed", zap.String("tenant_id", tenantID))
			c.Next()
			return
		}

		tenant, err := cfg.Tenants.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				log.Warn("bound tenant not found", zap.String("tenant_id", tenantID))
				c.Next()
				return
			}
			log.Error("tenant lookup failed", zap.String("tenant_id", tenantID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Internal server error", GetRequestID(c)))
			return
		}

		if !tenant.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "This account has been deactivated", GetRequestID(c)))
			return
		}

		if tenant.Expired(time.Now()) {
			log.Info("request blocked by expired subscription",
				zap.String("tenant_id", tenantID),
				zap.String("path", path),
				zap.Time("expired_at", *tenant.ExpiresAt))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePaymentRequired,
				"Your subscription has expired. Please renew your subscription to continue.",
				GetRequestID(c)))
			return
		}

		c.Next()
	}
}
