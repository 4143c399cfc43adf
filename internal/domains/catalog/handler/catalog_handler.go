package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/service"
	pricing "storefront-backend/internal/domains/pricing/model"
	"storefront-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *service.Catalog
}

func NewHandler(catalog *service.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

type productView struct {
	model.Product
	FormattedPrice string `json:"precio_formateado"`
	InStock        bool   `json:"disponible"`
}

func toView(p model.Product) productView {
	return productView{
		Product:        p,
		FormattedPrice: pricing.FormatCLP(p.Price),
		InStock:        p.InStock(),
	}
}

// ListProducts
// GET /products?q=&categoria=
func (h *Handler) ListProducts(c *gin.Context) {
	products := h.catalog.List(c.Request.Context(), service.ListFilter{
		Query:    c.Query("q"),
		Category: c.Query("categoria"),
	})

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	response.SuccessWithMeta(c, http.StatusOK, "", views, &response.Meta{Total: len(views)})
}

// GetProduct
// GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	p, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalServerError(c, "Failed to load product")
		return
	}
	response.Success(c, http.StatusOK, "", toView(p))
}
