package db

import (
	"fmt"

	types "github.com/stagehire/catalog-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// =========================
		// Catalog
		// =========================
		&types.Product{},
	); err != nil {
		return err
	}
	return EnsureCatalogIndexes(db)
}

// EnsureCatalogIndexes adds the indexes gorm tags cannot express. Both
// postgres and sqlite support partial indexes.
func EnsureCatalogIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_product_slug_active
		ON product(slug)
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_product_slug_active: %w", err)
	}
	return nil
}
