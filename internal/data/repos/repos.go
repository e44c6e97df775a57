package repos

import (
	"github.com/stagehire/catalog-backend/internal/data/repos/catalog"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type ProductRepo = catalog.ProductRepo

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}
