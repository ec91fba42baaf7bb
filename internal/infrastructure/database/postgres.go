package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/stockboard-api/internal/config"
	"github.com/sangkips/stockboard-api/internal/domain/entity"
	"github.com/sangkips/stockboard-api/internal/domain/enum"
	applog "github.com/sangkips/stockboard-api/pkg/logger"
	"github.com/sangkips/stockboard-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, env string) (*gorm.DB, error) {
	logLevel := logger.Info
	if env == "production" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	applog.Get().Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	applog.Get().Info("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Inventory
		&entity.Product{},
		&entity.Purchase{},

		// Money in and out
		&entity.Sale{},
		&entity.Expense{},
		&entity.Credit{},
		&entity.Debit{},
		&entity.Proforma{},
		&entity.ProformaItem{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.Get().Info("Database migrations completed successfully")
	return nil
}

// SeedAdmin creates the first admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no user has that email yet.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	log := applog.Get().WithField("email", cfg.Email)
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	var existing entity.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Info("Admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	firstName, lastName := splitName(cfg.Name)
	admin := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hashedPassword,
		Role:      enum.RoleAdmin,
		Active:    true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Info("Admin user created")
	return nil
}

// splitName splits "First Last" on the first space
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Admin", ""
	}
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}
