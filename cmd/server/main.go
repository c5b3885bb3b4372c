package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	adjustmentapp "github.com/retailops/backoffice/internal/application/adjustment"
	catalogapp "github.com/retailops/backoffice/internal/application/catalog"
	masterdataapp "github.com/retailops/backoffice/internal/application/masterdata"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/infrastructure/auth"
	"github.com/retailops/backoffice/internal/infrastructure/cache"
	"github.com/retailops/backoffice/internal/infrastructure/config"
	"github.com/retailops/backoffice/internal/infrastructure/event"
	"github.com/retailops/backoffice/internal/infrastructure/logger"
	"github.com/retailops/backoffice/internal/infrastructure/persistence"
	"github.com/retailops/backoffice/internal/interfaces/http/handler"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
	"github.com/retailops/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories and gateways
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	groupRepo := persistence.NewGormProductGroupRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	salesRepRepo := persistence.NewGormSalesRepRepository(db.DB)

	// Domain event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	var ledgerGateway adjustment.LedgerGateway = persistence.NewGormLedgerGateway(db.DB)
	if cfg.LedgerCache.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cachedGateway := cache.NewCachedLedgerGateway(ledgerGateway, redisClient, cfg.LedgerCache.TTL)
		eventBus.Subscribe(event.NewLedgerCacheInvalidationHandler(cachedGateway, log))
		ledgerGateway = cachedGateway
		log.Info("Ledger snapshot cache enabled", zap.Duration("ttl", cfg.LedgerCache.TTL))
	}

	// Application services
	adjustmentService := adjustmentapp.NewAdjustmentService(adjustmentRepo, ledgerGateway, eventBus)
	itemService := catalogapp.NewItemService(itemRepo, eventBus)
	importService := catalogapp.NewImportService(itemRepo)
	taxonomyService := catalogapp.NewTaxonomyService(brandRepo, groupRepo)
	masterDataService := masterdataapp.NewMasterDataService(branchRepo, salesRepRepo)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodyBytes),
		middleware.JWTAuthMiddleware(jwtService),
	)

	// Routes
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(db))
	r.Register(handler.NewAdjustmentHandler(adjustmentService))
	r.Register(handler.NewCatalogHandler(itemService, taxonomyService, importService))
	r.Register(handler.NewMasterDataHandler(masterDataService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
