package middleware

import (
	"github.com/gestock/backend/internal/tenantctx"
	"github.com/gin-gonic/gin"
)

// TenantScope acquires a tenant slot for the lifetime of the request and
// releases it when the handler chain returns. Must be installed before the
// authentication middleware; binding without an acquired slot fails.
//
// The slot is attached to the request context, so handlers, services, and
// repositories downstream all read the binding through
// tenantctx.Current on the context it was handed. Once released, contexts
// captured during the request read as unbound; a leaked context can never
// observe a later request's tenant.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, scope := tenantctx.Acquire(c.Request.Context())
		defer scope.Release()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
