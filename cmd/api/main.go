package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/application/service"
	"github.com/sangkips/stockboard-api/internal/config"
	"github.com/sangkips/stockboard-api/internal/domain/repository"
	"github.com/sangkips/stockboard-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/stockboard-api/internal/infrastructure/repository"
	"github.com/sangkips/stockboard-api/internal/presentation/http/handler"
	"github.com/sangkips/stockboard-api/internal/presentation/http/middleware"
	"github.com/sangkips/stockboard-api/internal/presentation/http/routes"
	"github.com/sangkips/stockboard-api/pkg/logger"
	"github.com/sangkips/stockboard-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.App.Env, cfg.Log.Level)
	log := logger.Get()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("Failed to register validators")
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Env)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Seed the first admin account
	if err := database.SeedAdmin(db, cfg.Admin); err != nil {
		log.WithError(err).Warn("Failed to seed admin user")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	loc := cfg.Dashboard.Location()

	// Initialize repositories
	userRepo := infraRepo.NewUserRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	saleRepo := infraRepo.NewSaleRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	purchaseRepo := infraRepo.NewPurchaseRepository(db)
	creditRepo := infraRepo.NewCreditRepository(db)
	debitRepo := infraRepo.NewDebitRepository(db)
	proformaRepo := infraRepo.NewProformaRepository(db)
	statsRepo := infraRepo.NewStatsRepository(db, loc)
	idempotencyRepo := infraRepo.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	saleService := service.NewSaleService(saleRepo, productRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo)
	creditService := service.NewCreditService(creditRepo)
	debitService := service.NewDebitService(debitRepo)
	proformaService := service.NewProformaService(proformaRepo, productRepo)
	dashboardService := service.NewDashboardService(statsRepo, saleRepo, productRepo, loc)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(saleService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Credit:    handler.NewCreditHandler(creditService),
		Debit:     handler.NewDebitHandler(debitService),
		Proforma:  handler.NewProformaHandler(proformaService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	defer rateLimiter.Close()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(ctx, idempotencyRepo, time.Hour)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": port,
			"env":  cfg.App.Env,
			"tz":   loc.String(),
		}).Infof("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// purgeIdempotencyKeys deletes expired idempotency keys every interval
// until ctx is done.
func purgeIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				logger.Get().WithError(err).Warn("Failed to purge idempotency keys")
				continue
			}
			if n > 0 {
				logger.Get().WithField("deleted", n).Debug("Purged expired idempotency keys")
			}
		}
	}
}
