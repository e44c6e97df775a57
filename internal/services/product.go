package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/data/cache"
	"github.com/stagehire/catalog-backend/internal/data/repos"
	types "github.com/stagehire/catalog-backend/internal/domain"
	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
	"github.com/stagehire/catalog-backend/internal/platform/apierr"
	"github.com/stagehire/catalog-backend/internal/platform/dbctx"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

// ProductInput is the full set of editable scalar product fields. Update
// replaces all of them.
type ProductInput struct {
	Slug            string `json:"slug" yaml:"slug"`
	Name            string `json:"name" yaml:"name"`
	Brand           string `json:"brand" yaml:"brand"`
	Category        string `json:"category" yaml:"category"`
	Summary         string `json:"summary" yaml:"summary"`
	Description     string `json:"description" yaml:"description"`
	RentalAvailable bool   `json:"rental_available" yaml:"rental_available"`
	SaleAvailable   bool   `json:"sale_available" yaml:"sale_available"`
	DailyRateCents  int64  `json:"daily_rate_cents" yaml:"daily_rate_cents"`
	PriceCents      int64  `json:"price_cents" yaml:"price_cents"`
	Status          string `json:"status" yaml:"status"`
}

type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*types.Product, error)
	Update(ctx context.Context, productID uuid.UUID, in ProductInput) (*types.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (*types.Product, error)
	GetBySlug(ctx context.Context, slug string) (*types.Product, error)
	List(ctx context.Context, filter types.ProductFilter) ([]*types.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	// Purge removes the product row and its specifications permanently. It
	// also works on products that were already soft deleted.
	Purge(ctx context.Context, productID uuid.UUID) error

	// Upsert creates or updates the product with in.Slug and replaces its
	// specifications. Used by catalog imports.
	Upsert(ctx context.Context, in ProductInput, sections []specs.Section, keySpecs []specs.KeySpecRef) (*types.Product, error)

	SpecificationService
	DisplayService
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	display     *displayLoader
}

func NewProductService(db *gorm.DB, baseLog *logger.Logger, productRepo repos.ProductRepo, displayCache cache.DisplayCache) ProductService {
	serviceLog := baseLog.With("service", "ProductService")
	if displayCache == nil {
		displayCache = cache.NewNoopDisplayCache()
	}
	return &productService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		display:     newDisplayLoader(serviceLog, displayCache),
	}
}

var (
	errProductNotFound = errors.New("product not found")
	errNameRequired    = errors.New("name is required")
	errSlugInvalid     = errors.New("slug must contain letters or digits")
	errSlugTaken       = errors.New("slug already in use")
	errStatusInvalid   = errors.New("status must be draft, published or archived")
)

func notFound() error {
	return apierr.NotFound("product_not_found", errProductNotFound)
}

// ProductSlug turns a product name into its URL slug.
func ProductSlug(name string) string {
	return strings.ReplaceAll(specs.Slugify(name), "_", "-")
}

func (ps *productService) normalize(dbc dbctx.Context, in ProductInput, selfID uuid.UUID) (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, apierr.BadRequest("invalid_product", errNameRequired)
	}
	slugSource := in.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = in.Name
	}
	in.Slug = ProductSlug(slugSource)
	if in.Slug == "" {
		return in, apierr.BadRequest("invalid_product", errSlugInvalid)
	}
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if in.Status == "" {
		in.Status = types.ProductStatusDraft
	}
	if !types.ValidProductStatus(in.Status) {
		return in, apierr.BadRequest("invalid_product", errStatusInvalid)
	}
	if in.DailyRateCents < 0 || in.PriceCents < 0 {
		return in, apierr.BadRequest("invalid_product", errors.New("prices must not be negative"))
	}

	taken, err := ps.productRepo.SlugTaken(dbc, in.Slug, selfID)
	if err != nil {
		return in, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return in, apierr.Conflict("slug_taken", fmt.Errorf("%w: %s", errSlugTaken, in.Slug))
	}
	return in, nil
}

func (ps *productService) Create(ctx context.Context, in ProductInput) (*types.Product, error) {
	var created *types.Product
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		var err error
		created, err = ps.create(dbc, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	ps.log.Info("Product created", "product_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (ps *productService) create(dbc dbctx.Context, in ProductInput) (*types.Product, error) {
	in, err := ps.normalize(dbc, in, uuid.Nil)
	if err != nil {
		return nil, err
	}
	p := &types.Product{
		ID:              uuid.New(),
		Slug:            in.Slug,
		Name:            in.Name,
		Brand:           strings.TrimSpace(in.Brand),
		Category:        strings.TrimSpace(in.Category),
		Summary:         in.Summary,
		Description:     in.Description,
		RentalAvailable: in.RentalAvailable,
		SaleAvailable:   in.SaleAvailable,
		DailyRateCents:  in.DailyRateCents,
		PriceCents:      in.PriceCents,
		Status:          in.Status,
		Specifications:  emptyObject(),
		KeySpecs:        emptyArray(),
	}
	if _, err := ps.productRepo.Create(dbc, []*types.Product{p}); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (ps *productService) Update(ctx context.Context, productID uuid.UUID, in ProductInput) (*types.Product, error) {
	var (
		oldSlug string
		updated *types.Product
	)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := ps.load(dbc, productID)
		if err != nil {
			return err
		}
		oldSlug = existing.Slug
		updated, err = ps.update(dbc, existing, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	ps.display.invalidate(ctx, oldSlug, updated.Slug)
	ps.log.Info("Product updated", "product_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (ps *productService) update(dbc dbctx.Context, existing *types.Product, in ProductInput) (*types.Product, error) {
	in, err := ps.normalize(dbc, in, existing.ID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"slug":             in.Slug,
		"name":             in.Name,
		"brand":            strings.TrimSpace(in.Brand),
		"category":         strings.TrimSpace(in.Category),
		"summary":          in.Summary,
		"description":      in.Description,
		"rental_available": in.RentalAvailable,
		"sale_available":   in.SaleAvailable,
		"daily_rate_cents": in.DailyRateCents,
		"price_cents":      in.PriceCents,
		"status":           in.Status,
	}
	if err := ps.productRepo.UpdateFields(dbc, existing.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return ps.load(dbc, existing.ID)
}

func (ps *productService) Get(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	return ps.load(dbctx.Background(ctx), productID)
}

func (ps *productService) GetBySlug(ctx context.Context, slug string) (*types.Product, error) {
	p, err := ps.productRepo.GetBySlug(dbctx.Background(ctx), strings.TrimSpace(slug))
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if p == nil {
		return nil, notFound()
	}
	return p, nil
}

func (ps *productService) load(dbc dbctx.Context, productID uuid.UUID) (*types.Product, error) {
	rows, err := ps.productRepo.GetByIDs(dbc, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if len(rows) == 0 || rows[0] == nil {
		return nil, notFound()
	}
	return rows[0], nil
}

func (ps *productService) List(ctx context.Context, filter types.ProductFilter) ([]*types.Product, error) {
	if filter.Status != "" && !types.ValidProductStatus(filter.Status) {
		return nil, apierr.BadRequest("invalid_filter", errStatusInvalid)
	}
	products, err := ps.productRepo.List(dbctx.Background(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (ps *productService) Delete(ctx context.Context, productID uuid.UUID) error {
	dbc := dbctx.Background(ctx)
	p, err := ps.load(dbc, productID)
	if err != nil {
		return err
	}
	if err := ps.productRepo.SoftDeleteByIDs(dbc, []uuid.UUID{productID}); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	ps.display.invalidate(ctx, p.Slug)
	ps.log.Info("Product deleted", "product_id", productID, "slug", p.Slug)
	return nil
}

func (ps *productService) Purge(ctx context.Context, productID uuid.UUID) error {
	var slug string
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		rows, err := ps.productRepo.GetByIDs(dbc, []uuid.UUID{productID})
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if len(rows) > 0 && rows[0] != nil {
			slug = rows[0].Slug
		}
		if err := ps.productRepo.FullDeleteByIDs(dbc, []uuid.UUID{productID}); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound()
			}
			return fmt.Errorf("purge product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ps.display.invalidate(ctx, slug)
	ps.log.Info("Product purged", "product_id", productID, "slug", slug)
	return nil
}

func (ps *productService) Upsert(ctx context.Context, in ProductInput, sections []specs.Section, keySpecs []specs.KeySpecRef) (*types.Product, error) {
	slug := ProductSlug(in.Slug)
	if slug == "" {
		slug = ProductSlug(in.Name)
	}
	in.Slug = slug

	var (
		saved   *types.Product
		oldSlug string
	)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		existing, err := ps.productRepo.GetBySlug(dbc, slug)
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}
		if existing == nil {
			saved, err = ps.create(dbc, in)
		} else {
			oldSlug = existing.Slug
			saved, err = ps.update(dbc, existing, in)
		}
		if err != nil {
			return err
		}
		if _, err := ps.writeSpecifications(dbc, saved.ID, sections, keySpecs); err != nil {
			return err
		}
		saved, err = ps.load(dbc, saved.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	ps.display.invalidate(ctx, oldSlug, saved.Slug)
	return saved, nil
}
