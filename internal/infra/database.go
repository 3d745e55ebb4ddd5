package infra

import (
	"fmt"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, check constraints on existing tables).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus the schema patches. Exposed so
// integration tests can migrate a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Variant{},
		&model.InventoryAudit{},
		&model.Sale{},
		&model.Order{},
		&model.StockAlert{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is guarded by an existence check so re-running is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index backing the low-stock listing. The query filters on a
		// column-to-column comparison, which a plain index cannot serve.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_variants_low_stock') THEN
		    CREATE INDEX idx_variants_low_stock
		        ON variants (product_id)
		        WHERE stock_quantity < reorder_threshold;
		  END IF;
		END $$`,
		// Unresolved alerts are the hot path for both the dashboard listing and
		// the worker's duplicate check.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_alerts_unresolved') THEN
		    CREATE INDEX idx_stock_alerts_unresolved
		        ON stock_alerts (variant_id)
		        WHERE is_resolved = false;
		  END IF;
		END $$`,
		// Audit trail is read newest-first per variant.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_inventory_audits_variant_created') THEN
		    CREATE INDEX idx_inventory_audits_variant_created
		        ON inventory_audits (variant_id, created_at DESC);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
