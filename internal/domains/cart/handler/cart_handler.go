package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"storefront-backend/internal/domains/cart/model"
	catalog "storefront-backend/internal/domains/catalog/model"
	pricing "storefront-backend/internal/domains/pricing/model"
	sessionService "storefront-backend/internal/domains/session/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProductFinder resolves the live product being added
type ProductFinder interface {
	Get(ctx context.Context, id int64) (catalog.Product, error)
}

type Handler struct {
	products ProductFinder
}

func NewHandler(products ProductFinder) *Handler {
	return &Handler{products: products}
}

// CartResponse is the cart of the device with its advisory totals
type CartResponse struct {
	Scope   string                  `json:"scope"`
	Items   []model.CartLine        `json:"items"`
	Count   int                     `json:"count"`
	Pricing pricing.PricingSnapshot `json:"pricing"`
	Display pricing.Display         `json:"display"`
}

func buildCartResponse(session *sessionService.Session) CartResponse {
	lines, snapshot := session.Pricing.Quote()
	return CartResponse{
		Scope:   session.Cart.Scope().String(),
		Items:   lines,
		Count:   model.CountUnits(lines),
		Pricing: snapshot,
		Display: snapshot.Display(),
	}
}

// GetCart
// GET /me/cart
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "Cart retrieved successfully", buildCartResponse(session))
}

// AddItem
// POST /me/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	product, err := h.products.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !product.InStock() {
		h.handleError(c, model.ErrOutOfStock)
		return
	}

	session.Cart.AddItem(c.Request.Context(), product)
	response.Success(c, http.StatusOK, "Item added to cart", buildCartResponse(session))
}

// DecreaseItem
// POST /me/cart/items/:id/decrease
func (h *Handler) DecreaseItem(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	session.Cart.DecreaseItem(c.Request.Context(), productID)
	response.Success(c, http.StatusOK, "Item decreased", buildCartResponse(session))
}

// RemoveItem
// DELETE /me/cart/items/:id
func (h *Handler) RemoveItem(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	session.Cart.RemoveItem(c.Request.Context(), productID)
	response.Success(c, http.StatusOK, "Item removed", buildCartResponse(session))
}

// ClearCart
// DELETE /me/cart
func (h *Handler) ClearCart(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	session.Cart.Clear(c.Request.Context())
	response.Success(c, http.StatusOK, "Cart cleared", buildCartResponse(session))
}

// SetDiscount switches the institutional discount of the device
// PUT /me/cart/discount
func (h *Handler) SetDiscount(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var req model.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	session.Toggle.SetActive(c.Request.Context(), *req.Active)
	response.Success(c, http.StatusOK, "Discount updated", buildCartResponse(session))
}

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, model.ErrCodeInvalidProductID, model.ErrInvalidProductID.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
	case errors.Is(err, model.ErrOutOfStock):
		response.Error(c, http.StatusConflict, model.ErrCodeOutOfStock, "Product is out of stock")
	default:
		logger.Error("cart request failed", err)
		response.InternalServerError(c, "Failed to update cart")
	}
}
