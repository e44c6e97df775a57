package app

import (
	"github.com/gin-gonic/gin"

	"github.com/stagehire/catalog-backend/internal/http"
	httpH "github.com/stagehire/catalog-backend/internal/http/handlers"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Product      *httpH.ProductHandler
	ProductAdmin *httpH.ProductAdminHandler
}

func wireHandlers(log *logger.Logger, pinger httpH.Pinger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(pinger),
		Product:      httpH.NewProductHandler(log, services.Product),
		ProductAdmin: httpH.NewProductAdminHandler(log, services.Product),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	tracingService := ""
	if cfg.Otel.Enabled {
		tracingService = cfg.Otel.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		HealthHandler:       handlers.Health,
		ProductHandler:      handlers.Product,
		ProductAdminHandler: handlers.ProductAdmin,
		Metrics:             metrics,
		CORSAllowOrigins:    cfg.CORSAllowOrigins,
		TracingService:      tracingService,
	})
}
