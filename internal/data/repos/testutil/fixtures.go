package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/stagehire/catalog-backend/internal/domain"
)

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, slug, status string, specifications string) *types.Product {
	tb.Helper()
	if specifications == "" {
		specifications = "{}"
	}
	p := &types.Product{
		ID:             uuid.New(),
		Slug:           slug,
		Name:           "Product " + slug,
		Brand:          "L-Acoustics",
		Category:       "loudspeakers",
		Status:         status,
		Specifications: datatypes.JSON([]byte(specifications)),
		KeySpecs:       datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}
