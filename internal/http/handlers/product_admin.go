package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/stagehire/catalog-backend/internal/domain"
	"github.com/stagehire/catalog-backend/internal/http/response"
	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
	"github.com/stagehire/catalog-backend/internal/services"
)

// ProductAdminHandler serves the CMS editing endpoints.
type ProductAdminHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductAdminHandler(log *logger.Logger, productService services.ProductService) *ProductAdminHandler {
	return &ProductAdminHandler{
		log:            log.With("handler", "ProductAdminHandler"),
		productService: productService,
	}
}

// adminProduct is the admin view of a product. Specifications stay in their
// stored flat form; the editor endpoints expose the structured view.
type adminProduct struct {
	*types.Product
	SpecFormat string `json:"spec_format"`
}

func toAdminProduct(p *types.Product) adminProduct {
	format := services.SpecFormatLegacy
	flat := specs.FlatMapFromJSON(p.Specifications)
	switch {
	case len(flat) == 0:
		format = services.SpecFormatEmpty
	case specs.IsStructuredFormat(flat):
		format = services.SpecFormatStructured
	}
	return adminProduct{Product: p, SpecFormat: format}
}

var (
	errBadBody  = errors.New("invalid request body")
	errBadPurge = errors.New("purge must be a boolean")
)

func (h *ProductAdminHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context(), listFilter(c))
	if err != nil {
		h.logIfInternal("List failed", err)
		response.RespondAPIError(c, err, "load_products_failed")
		return
	}
	out := make([]adminProduct, 0, len(products))
	for _, p := range products {
		out = append(out, toAdminProduct(p))
	}
	response.RespondOK(c, gin.H{"products": out})
}

func (h *ProductAdminHandler) Create(c *gin.Context) {
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", errBadBody)
		return
	}
	p, err := h.productService.Create(c.Request.Context(), in)
	if err != nil {
		h.logIfInternal("Create failed", err)
		response.RespondAPIError(c, err, "create_product_failed")
		return
	}
	response.RespondCreated(c, gin.H{"product": toAdminProduct(p)})
}

func (h *ProductAdminHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.logIfInternal("Get failed", err)
		response.RespondAPIError(c, err, "load_product_failed")
		return
	}
	response.RespondOK(c, gin.H{"product": toAdminProduct(p)})
}

func (h *ProductAdminHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", errBadBody)
		return
	}
	p, err := h.productService.Update(c.Request.Context(), id, in)
	if err != nil {
		h.logIfInternal("Update failed", err)
		response.RespondAPIError(c, err, "update_product_failed")
		return
	}
	response.RespondOK(c, gin.H{"product": toAdminProduct(p)})
}

// Delete soft deletes by default. With ?purge=true the row and its
// specifications are removed for good.
func (h *ProductAdminHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	purge := false
	if raw := c.Query("purge"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_purge", errBadPurge)
			return
		}
		purge = v
	}
	remove := h.productService.Delete
	if purge {
		remove = h.productService.Purge
	}
	if err := remove(c.Request.Context(), id); err != nil {
		h.logIfInternal("Delete failed", err)
		response.RespondAPIError(c, err, "delete_product_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductAdminHandler) GetSpecifications(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	ed, err := h.productService.SpecificationEditor(c.Request.Context(), id)
	if err != nil {
		h.logIfInternal("SpecificationEditor failed", err)
		response.RespondAPIError(c, err, "load_specifications_failed")
		return
	}
	response.RespondOK(c, gin.H{"specifications": ed})
}

type saveSpecificationsRequest struct {
	Sections []specs.Section    `json:"sections"`
	KeySpecs []specs.KeySpecRef `json:"key_specs"`
}

func (h *ProductAdminHandler) PutSpecifications(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req saveSpecificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", errBadBody)
		return
	}
	ed, err := h.productService.SaveSpecifications(c.Request.Context(), id, req.Sections, req.KeySpecs)
	if err != nil {
		h.logIfInternal("SaveSpecifications failed", err)
		response.RespondAPIError(c, err, "save_specifications_failed")
		return
	}
	response.RespondOK(c, gin.H{"specifications": ed})
}

type previewRequest struct {
	Sections []specs.Section `json:"sections"`
}

func (h *ProductAdminHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", errBadBody)
		return
	}
	response.RespondOK(c, gin.H{"preview": h.productService.PreviewSpecifications(req.Sections)})
}

func (h *ProductAdminHandler) logIfInternal(msg string, err error) {
	if statusOf(err) >= http.StatusInternalServerError {
		h.log.Error(msg, "error", err)
	}
}
