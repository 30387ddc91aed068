package database

import (
	"fmt"
	"time"

	"fulfillment/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection initializes a connection pool using GORM and migrates the schema.
// Unique violations surface as gorm.ErrDuplicatedKey.
func NewConnection(dsn string, debug bool, logger *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("database schema migrated")

	return db, nil
}

// Migrate creates or updates the returns schema.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductVariation{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryTransaction{},
		&model.AuditLog{},
		&model.Role{},
		&model.Permission{},
		&model.ReturnPolicy{},
		&model.ReturnRequest{},
		&model.ReturnStatusHistory{},
		&model.QualityCheck{},
		&model.DamagedInventory{},
		&model.OutboxEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	// At most one open return per order item.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uniq_return_requests_active_item
		ON return_requests (order_item_id)
		WHERE status NOT IN ('rejected', 'cancelled', 'completed')`).Error
	if err != nil {
		return fmt.Errorf("failed to create active return index: %w", err)
	}
	return nil
}
