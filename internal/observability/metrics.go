package observability

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

// Display cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Metrics struct {
	apiRequests      *CounterVec
	apiLatency       *HistogramVec
	apiInflight      *Gauge
	displayCache     *CounterVec
	specSaves        *CounterVec
	specCollisions   *CounterVec
	dbPool           *GaugeVec
	collectorStarted sync.Once
}

var (
	mu       sync.RWMutex
	instance *Metrics
)

// Init installs the process-wide collectors. With enabled false it clears them
// and every recording call becomes a no-op.
func Init(enabled bool) *Metrics {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		instance = nil
		return nil
	}
	instance = NewMetrics()
	return instance
}

// Current returns the installed collectors or nil.
func Current() *Metrics {
	mu.RLock()
	defer mu.RUnlock()
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("catalog_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"catalog_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		),
		apiInflight:    NewGauge("catalog_api_inflight_requests", "In-flight API requests."),
		displayCache:   NewCounterVec("catalog_display_cache_total", "Public product display cache lookups by result.", []string{"result"}),
		specSaves:      NewCounterVec("catalog_spec_saves_total", "Specification saves by outcome.", []string{"outcome"}),
		specCollisions: NewCounterVec("catalog_spec_label_collisions_total", "Labels merged on save because they share a key.", []string{"kind"}),
		dbPool:         NewGaugeVec("catalog_db_pool", "database/sql pool statistics.", []string{"stat"}),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.displayCache,
		m.specSaves,
		m.specCollisions,
		m.dbPool,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncDisplayCache(result string) {
	if m == nil {
		return
	}
	m.displayCache.Inc(result)
}

func (m *Metrics) IncSpecSave(outcome string) {
	if m == nil {
		return
	}
	m.specSaves.Inc(outcome)
}

// AddSpecCollisions counts merged labels; kind is "section" or "row".
func (m *Metrics) AddSpecCollisions(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.specCollisions.Add(float64(n), kind)
}

// StartDBCollector samples pool stats every interval until ctx ends. Only the
// first call starts a collector.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	m.collectorStarted.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					m.sampleDB(log, db)
				}
			}
		}()
	})
}

func (m *Metrics) sampleDB(log *logger.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("metrics: db stats unavailable", "error", err)
		return
	}
	stats := sqlDB.Stats()
	m.dbPool.Set(float64(stats.OpenConnections), "open_connections")
	m.dbPool.Set(float64(stats.InUse), "in_use")
	m.dbPool.Set(float64(stats.Idle), "idle")
	m.dbPool.Set(float64(stats.WaitCount), "wait_count")
	m.dbPool.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbPool.Set(float64(stats.MaxOpenConnections), "max_open_connections")
}
