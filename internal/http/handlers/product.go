package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/stagehire/catalog-backend/internal/domain"
	"github.com/stagehire/catalog-backend/internal/http/response"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
	"github.com/stagehire/catalog-backend/internal/services"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

type productCard struct {
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	Category        string `json:"category"`
	Summary         string `json:"summary"`
	RentalAvailable bool   `json:"rental_available"`
	SaleAvailable   bool   `json:"sale_available"`
	DailyRateCents  int64  `json:"daily_rate_cents"`
	PriceCents      int64  `json:"price_cents"`
}

func (h *ProductHandler) ListPublished(c *gin.Context) {
	filter := listFilter(c)
	filter.Status = types.ProductStatusPublished
	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("ListPublished failed", "error", err)
		response.RespondAPIError(c, err, "load_products_failed")
		return
	}
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, productCard{
			Slug:            p.Slug,
			Name:            p.Name,
			Brand:           p.Brand,
			Category:        p.Category,
			Summary:         p.Summary,
			RentalAvailable: p.RentalAvailable,
			SaleAvailable:   p.SaleAvailable,
			DailyRateCents:  p.DailyRateCents,
			PriceCents:      p.PriceCents,
		})
	}
	response.RespondOK(c, gin.H{"products": cards})
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	d, err := h.productService.Display(c.Request.Context(), slug)
	if err != nil {
		if statusOf(err) >= http.StatusInternalServerError {
			h.log.Error("Display failed", "error", err, "slug", slug)
		}
		response.RespondAPIError(c, err, "load_product_failed")
		return
	}
	response.RespondOK(c, gin.H{"product": d})
}

func listFilter(c *gin.Context) types.ProductFilter {
	f := types.ProductFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Category: strings.TrimSpace(c.Query("category")),
		Brand:    strings.TrimSpace(c.Query("brand")),
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		f.Offset = v
	}
	return f
}
