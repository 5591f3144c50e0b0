package middleware

import (
	"errors"

	"github.com/gestock/backend/internal/application/entitlement"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/domain/shared"
	"github.com/gestock/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequirePlans guards a route with a plan policy. The policy is declared at
// route registration; the check runs per request against the tenant bound to
// the request scope.
func RequirePlans(enforcer *entitlement.Enforcer, plans ...identity.Plan) gin.HandlerFunc {
	return RequirePolicy(enforcer, entitlement.RequirePlans(plans...))
}

// RequirePolicy guards a route with an explicit policy, allowing a custom
// rejection message
func RequirePolicy(enforcer *entitlement.Enforcer, policy entitlement.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := enforcer.Check(c.Request.Context(), policy); err != nil {
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponseWithRequestID(
					domainErr.Code, domainErr.Message, GetRequestID(c)))
				return
			}
			c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeInternal), dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Internal server error", GetRequestID(c)))
			return
		}
		c.Next()
	}
}
