package catalog

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/stagehire/catalog-backend/internal/domain"
	"github.com/stagehire/catalog-backend/internal/platform/dbctx"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

const defaultListLimit = 100

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error)
	GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Product, error)
	List(dbc dbctx.Context, filter types.ProductFilter) ([]*types.Product, error)
	SlugTaken(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error)
	UpdateFields(dbc dbctx.Context, productID uuid.UUID, updates map[string]interface{}) error
	UpdateSpecifications(dbc dbctx.Context, productID uuid.UUID, specifications, keySpecs datatypes.JSON) error
	SoftDeleteByIDs(dbc dbctx.Context, productIDs []uuid.UUID) error
	FullDeleteByIDs(dbc dbctx.Context, productIDs []uuid.UUID) error
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (r *productRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *productRepo) Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error) {
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	if err := r.tx(dbc).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.Product, error) {
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := r.tx(dbc).
		Where("id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetBySlug returns nil, nil when no live product has slug.
func (r *productRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Product, error) {
	var p types.Product
	err := r.tx(dbc).Where("slug = ?", slug).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(dbc dbctx.Context, filter types.ProductFilter) ([]*types.Product, error) {
	q := r.tx(dbc).Model(&types.Product{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	limit := filter.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.Product
	if err := q.Order("name ASC").Order("id ASC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) SlugTaken(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error) {
	q := r.tx(dbc).Model(&types.Product{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) UpdateFields(dbc dbctx.Context, productID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.tx(dbc).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateSpecifications overwrites both spec columns. There are no partial
// spec updates.
func (r *productRepo) UpdateSpecifications(dbc dbctx.Context, productID uuid.UUID, specifications, keySpecs datatypes.JSON) error {
	res := r.tx(dbc).
		Model(&types.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"specifications": specifications,
			"key_specs":      keySpecs,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) SoftDeleteByIDs(dbc dbctx.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.tx(dbc).
		Where("id IN ?", productIDs).
		Delete(&types.Product{}).Error
}

// FullDeleteByIDs removes rows for good, soft-deleted ones included. It
// returns gorm.ErrRecordNotFound when nothing matched.
func (r *productRepo) FullDeleteByIDs(dbc dbctx.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	res := r.tx(dbc).
		Unscoped().
		Where("id IN ?", productIDs).
		Delete(&types.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
