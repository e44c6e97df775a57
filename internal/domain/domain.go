package domain

import "github.com/stagehire/catalog-backend/internal/domain/catalog"

type Product = catalog.Product
type ProductFilter = catalog.ProductFilter

const (
	ProductStatusDraft     = catalog.ProductStatusDraft
	ProductStatusPublished = catalog.ProductStatusPublished
	ProductStatusArchived  = catalog.ProductStatusArchived
)

var ValidProductStatus = catalog.ValidProductStatus
