package app

import (
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/data/cache"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
	"github.com/stagehire/catalog-backend/internal/services"
)

type Services struct {
	Product      services.ProductService
	DisplayCache cache.DisplayCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	displayCache := cache.NewNoopDisplayCache()
	if cfg.Redis.Addr != "" {
		c, err := cache.NewRedisDisplayCache(log, cfg.Redis)
		if err != nil {
			return Services{}, fmt.Errorf("init display cache: %w", err)
		}
		displayCache = c
	} else {
		log.Warn("REDIS_ADDR not set; display cache disabled")
	}

	return Services{
		Product:      services.NewProductService(db, log, reposet.Product, displayCache),
		DisplayCache: displayCache,
	}, nil
}

// Close releases any client the cache holds.
func (s Services) Close() error {
	if c, ok := s.DisplayCache.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
