// Package router assembles the HTTP pipeline. Middleware order is load
// bearing: the tenant scope must exist before authentication binds it, and
// the subscription gate reads the binding authentication made.
package router

import (
	"github.com/gestock/backend/internal/application/billing"
	"github.com/gestock/backend/internal/application/entitlement"
	appidentity "github.com/gestock/backend/internal/application/identity"
	appshop "github.com/gestock/backend/internal/application/shop"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/interfaces/http/handler"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// RouteRegistrar registers a handler's routes on the API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Dependencies carries everything the router wires together
type Dependencies struct {
	Tokens   *auth.TokenService
	Users    identity.UserRepository
	Tenants  identity.TenantRepository
	Enforcer *entitlement.Enforcer

	AuthService     *appidentity.AuthService
	TenantService   *appidentity.TenantService
	PaymentService  *billing.PaymentService
	PurchaseService *appshop.PurchaseService
	SaleService     *appshop.SaleService
	ExpenseService  *appshop.ExpenseService

	Logger *zap.Logger

	// CORS is optional; zero value rejects cross-origin requests
	CORS middleware.CORSConfig
	// ServiceName names the server in trace spans; empty disables tracing
	ServiceName string
}

// Setup builds the gin engine with the full middleware pipeline and all
// routes registered
func Setup(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if deps.ServiceName != "" {
		engine.Use(otelgin.Middleware(deps.ServiceName))
	}
	engine.Use(middleware.CORSWithConfig(deps.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	engine.Use(middleware.TenantScope())
	engine.Use(middleware.Authentication(deps.Tokens, deps.Users, log))
	engine.Use(middleware.SubscriptionGate(middleware.SubscriptionGateConfig{
		Tenants:       deps.Tenants,
		AllowPrefixes: middleware.DefaultAllowPrefixes(),
		Logger:        log,
	}))

	api := engine.Group("/api/v1")
	registrars := []RouteRegistrar{
		handler.NewAuthHandler(deps.AuthService),
		handler.NewTenantHandler(deps.TenantService),
		handler.NewPaymentHandler(deps.PaymentService),
		handler.NewPurchaseHandler(deps.PurchaseService, deps.Enforcer),
		handler.NewSaleHandler(deps.SaleService),
		handler.NewExpenseHandler(deps.ExpenseService),
	}
	for _, registrar := range registrars {
		registrar.RegisterRoutes(api)
	}

	return engine
}
