package app

import (
	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/data/repos"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

type Repos struct {
	Product repos.ProductRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Product: repos.NewProductRepo(db, log),
	}
}
