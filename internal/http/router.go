package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/stagehire/catalog-backend/internal/http/handlers"
	httpMW "github.com/stagehire/catalog-backend/internal/http/middleware"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler       *httpH.HealthHandler
	ProductHandler      *httpH.ProductHandler
	ProductAdminHandler *httpH.ProductAdminHandler

	// Metrics, when set, instruments requests and serves GET /metrics.
	Metrics *observability.Metrics

	CORSAllowOrigins []string
	// TracingService enables otelgin spans under this service name.
	TracingService string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingService != "" {
		r.Use(otelgin.Middleware(cfg.TracingService))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")

	// Public catalog
	if cfg.ProductHandler != nil {
		api.GET("/products", cfg.ProductHandler.ListPublished)
		api.GET("/products/:slug", cfg.ProductHandler.GetBySlug)
	}

	// CMS. Access control sits in front of this service.
	admin := api.Group("/admin")
	if h := cfg.ProductAdminHandler; h != nil {
		admin.GET("/products", h.List)
		admin.POST("/products", h.Create)
		admin.GET("/products/:id", h.Get)
		admin.PUT("/products/:id", h.Update)
		admin.DELETE("/products/:id", h.Delete)
		admin.GET("/products/:id/specifications", h.GetSpecifications)
		admin.PUT("/products/:id/specifications", h.PutSpecifications)
		admin.POST("/specifications/preview", h.Preview)
	}

	return r
}
