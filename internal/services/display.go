package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/stagehire/catalog-backend/internal/data/cache"
	types "github.com/stagehire/catalog-backend/internal/domain"
	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/dbctx"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

// ProductDisplay is the public product page payload.
type ProductDisplay struct {
	Slug            string               `json:"slug"`
	Name            string               `json:"name"`
	Brand           string               `json:"brand"`
	Category        string               `json:"category"`
	Summary         string               `json:"summary"`
	Description     string               `json:"description"`
	RentalAvailable bool                 `json:"rental_available"`
	SaleAvailable   bool                 `json:"sale_available"`
	DailyRateCents  int64                `json:"daily_rate_cents"`
	PriceCents      int64                `json:"price_cents"`
	Specifications  []specs.DisplayGroup `json:"specifications"`
	KeySpecs        []specs.KeySpec      `json:"key_specs"`
}

type DisplayService interface {
	// Display returns the public projection of a published product.
	Display(ctx context.Context, slug string) (*ProductDisplay, error)
}

func buildDisplay(p *types.Product) *ProductDisplay {
	flat := specs.FlatMapFromJSON(p.Specifications)
	sections := specs.Decode(flat)
	return &ProductDisplay{
		Slug:            p.Slug,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
		Summary:         p.Summary,
		Description:     p.Description,
		RentalAvailable: p.RentalAvailable,
		SaleAvailable:   p.SaleAvailable,
		DailyRateCents:  p.DailyRateCents,
		PriceCents:      p.PriceCents,
		Specifications:  specs.GroupForDisplay(flat),
		KeySpecs:        specs.ResolveKeySpecs(sections, keySpecRefsFromJSON(p.KeySpecs)),
	}
}

func (ps *productService) Display(ctx context.Context, slug string) (*ProductDisplay, error) {
	slug = strings.TrimSpace(slug)
	ctx, span := tracer.Start(ctx, "ProductService.Display")
	defer span.End()
	span.SetAttributes(attribute.String("product.slug", slug))

	return ps.display.load(ctx, slug, func(ctx context.Context) (*ProductDisplay, error) {
		p, err := ps.productRepo.GetBySlug(dbctx.Background(ctx), slug)
		if err != nil {
			return nil, fmt.Errorf("load product: %w", err)
		}
		if p == nil || !p.IsPublished() {
			return nil, notFound()
		}
		return buildDisplay(p), nil
	})
}

// displayFillTimeout bounds a shared fill, which outlives the caller that
// started it.
const displayFillTimeout = 10 * time.Second

// displayLoader serves display payloads from the cache, collapsing concurrent
// misses for the same slug into one database read.
//
// Each slug carries a generation that invalidate bumps before deleting the
// cache entry. A fill that observes a newer generation after its write drops
// the entry again, so a fill that read the row before a save cannot leave the
// old payload behind.
type displayLoader struct {
	log   *logger.Logger
	cache cache.DisplayCache
	group singleflight.Group

	mu  sync.Mutex
	gen map[string]uint64
}

func newDisplayLoader(log *logger.Logger, c cache.DisplayCache) *displayLoader {
	return &displayLoader{log: log, cache: c, gen: map[string]uint64{}}
}

func (l *displayLoader) generation(slug string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen[slug]
}

func (l *displayLoader) bump(slugs ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range slugs {
		if s != "" {
			l.gen[s]++
		}
	}
}

func (l *displayLoader) load(ctx context.Context, slug string, fill func(context.Context) (*ProductDisplay, error)) (*ProductDisplay, error) {
	metrics := observability.Current()
	if raw, ok, err := l.cache.Get(ctx, slug); err != nil {
		metrics.IncDisplayCache(observability.CacheError)
		l.log.Warn("Display cache read failed", "slug", slug, "error", err)
	} else if ok {
		var d ProductDisplay
		if err := json.Unmarshal(raw, &d); err == nil {
			metrics.IncDisplayCache(observability.CacheHit)
			return &d, nil
		}
		metrics.IncDisplayCache(observability.CacheError)
		l.log.Warn("Display cache entry unreadable", "slug", slug)
	} else {
		metrics.IncDisplayCache(observability.CacheMiss)
	}

	// callers arriving after an invalidate must not join a fill that started
	// before it
	gen := l.generation(slug)
	key := slug + "#" + strconv.FormatUint(gen, 10)

	ch := l.group.DoChan(key, func() (interface{}, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), displayFillTimeout)
		defer cancel()

		d, err := fill(fillCtx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(d)
		if err != nil {
			return d, nil
		}
		if l.generation(slug) != gen {
			return d, nil
		}
		if err := l.cache.Set(fillCtx, slug, raw); err != nil {
			l.log.Warn("Display cache write failed", "slug", slug, "error", err)
			return d, nil
		}
		if l.generation(slug) != gen {
			if err := l.cache.Invalidate(fillCtx, slug); err != nil {
				l.log.Warn("Display cache invalidate failed", "slugs", []string{slug}, "error", err)
			}
		}
		return d, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// callers sharing a flight get their own copy
		d := *res.Val.(*ProductDisplay)
		return &d, nil
	}
}

func (l *displayLoader) invalidate(ctx context.Context, slugs ...string) {
	l.bump(slugs...)
	if err := l.cache.Invalidate(ctx, slugs...); err != nil {
		l.log.Warn("Display cache invalidate failed", "slugs", slugs, "error", err)
	}
}
