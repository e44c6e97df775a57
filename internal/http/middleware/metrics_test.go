package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stagehire/catalog-backend/internal/observability"
)

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/products/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/products/k2", "/api/products/kara-ii", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), `catalog_api_requests_total{method="GET",route="/api/products/:slug",status="200"} 2`) {
		t.Fatalf("missing templated route series:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `route="unmatched",status="404"`) {
		t.Fatalf("missing unmatched series:\n%s", buf.String())
	}
}
