package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
	ProductStatusArchived  = "archived"
)

// Product is one rental/sale item in the catalog.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug     string    `gorm:"column:slug;not null;index" json:"slug"`
	Name     string    `gorm:"column:name;not null" json:"name"`
	Brand    string    `gorm:"column:brand;index" json:"brand"`
	Category string    `gorm:"column:category;index" json:"category"`
	Summary  string    `gorm:"column:summary" json:"summary"`

	Description string `gorm:"column:description;type:text" json:"description"`

	RentalAvailable bool  `gorm:"column:rental_available;not null;default:false" json:"rental_available"`
	SaleAvailable   bool  `gorm:"column:sale_available;not null;default:false" json:"sale_available"`
	DailyRateCents  int64 `gorm:"column:daily_rate_cents;not null;default:0" json:"daily_rate_cents"`
	PriceCents      int64 `gorm:"column:price_cents;not null;default:0" json:"price_cents"`

	Status string `gorm:"column:status;not null;default:'draft';index" json:"status"`

	// Flat spec_* key map, see modules/catalog/specs.
	Specifications datatypes.JSON `gorm:"column:specifications;type:jsonb" json:"specifications"`
	// Ordered [{section,label}] refs highlighted on the product summary.
	KeySpecs datatypes.JSON `gorm:"column:key_specs;type:jsonb" json:"key_specs"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProductStatusDraft
	}
	return nil
}

func (p *Product) IsPublished() bool {
	return p != nil && p.Status == ProductStatusPublished
}

func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusArchived:
		return true
	}
	return false
}

// ProductFilter narrows product listings. Zero values mean "any".
type ProductFilter struct {
	Status   string
	Category string
	Brand    string
	Limit    int
	Offset   int
}
