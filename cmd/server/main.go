package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestock/backend/internal/application/billing"
	"github.com/gestock/backend/internal/application/entitlement"
	identityapp "github.com/gestock/backend/internal/application/identity"
	shopapp "github.com/gestock/backend/internal/application/shop"
	"github.com/gestock/backend/internal/infrastructure/auth"
	"github.com/gestock/backend/internal/infrastructure/cache"
	"github.com/gestock/backend/internal/infrastructure/config"
	"github.com/gestock/backend/internal/infrastructure/logger"
	"github.com/gestock/backend/internal/infrastructure/persistence"
	"github.com/gestock/backend/internal/infrastructure/telemetry"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gestock/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting gestock backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize telemetry", zap.Error(err))
	}
	defer func() { _ = tracer.Shutdown(ctx) }()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, log); err != nil {
		log.Fatal("failed to register database tracing", zap.Error(err))
	}

	// The subscription gate reads the tenant record on every guarded
	// request; put the cache in front of the repository so that read is
	// cheap. Redis when configured, process-local otherwise.
	var tenantCache cache.TenantCache
	if cfg.Redis.Host != "" {
		redisCache, err := cache.NewRedisTenantCache(cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		tenantCache = redisCache
		log.Info("tenant cache backed by redis",
			zap.String("host", cfg.Redis.Host))
	} else {
		tenantCache = cache.NewInMemoryTenantCache()
		log.Info("tenant cache in memory")
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := cache.NewCachedTenantRepository(
		persistence.NewGormTenantRepository(db.DB),
		tenantCache,
		cfg.Billing.TenantCacheTTL,
	)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	tokenService := auth.NewTokenService(cfg.JWT)
	enforcer := entitlement.NewEnforcer(tenantRepo, log)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	serviceName := ""
	if cfg.Telemetry.Enabled {
		serviceName = cfg.Telemetry.ServiceName
	}

	engine := router.Setup(router.Dependencies{
		Tokens:          tokenService,
		Users:           userRepo,
		Tenants:         tenantRepo,
		Enforcer:        enforcer,
		AuthService:     identityapp.NewAuthService(userRepo, tenantRepo, tokenService, log),
		TenantService:   identityapp.NewTenantService(tenantRepo, log),
		PaymentService:  billing.NewPaymentService(tenantRepo, cfg.Billing.SubscriptionPeriod, log),
		PurchaseService: shopapp.NewPurchaseService(purchaseRepo, log),
		SaleService:     shopapp.NewSaleService(saleRepo, log),
		ExpenseService:  shopapp.NewExpenseService(expenseRepo, log),
		Logger:          log,
		CORS:            corsConfig,
		ServiceName:     serviceName,
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
