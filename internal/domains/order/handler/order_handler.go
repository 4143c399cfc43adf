package handler

import (
	"errors"
	"net/http"

	identity "storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	pricing "storefront-backend/internal/domains/pricing/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.OrderService
}

func NewHandler(service service.OrderService) *Handler {
	return &Handler{service: service}
}

// Checkout places an order with the device's cart and its current totals
// POST /checkout
func (h *Handler) Checkout(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	customer, _ := middleware.GetIdentity(c)

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	lines, snapshot := session.Pricing.Quote()
	order, err := h.service.Checkout(c.Request.Context(), service.CheckoutInput{
		Customer: customer,
		Lines:    lines,
		Pricing:  snapshot,
		Request:  req,
	}, session.Cart)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Order placed successfully", model.CheckoutResponse{
		Order:          order,
		FormattedTotal: pricing.FormatCLP(order.Total),
	})
}

// MyOrders
// GET /me/orders
func (h *Handler) MyOrders(c *gin.Context) {
	customer, _ := middleware.GetIdentity(c)

	orders, err := h.service.ListForCustomer(c.Request.Context(), customer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, "", orders, &response.Meta{Total: len(orders)})
}

// AllOrders is the seller view of every order
// GET /admin/orders
func (h *Handler) AllOrders(c *gin.Context) {
	viewer, _ := middleware.GetIdentity(c)

	orders, err := h.service.ListAll(c.Request.Context(), viewer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, "", orders, &response.Meta{Total: len(orders)})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		response.ValidationError(c, err)
	case errors.Is(err, model.ErrCartEmpty):
		response.Error(c, http.StatusBadRequest, model.ErrCodeCartEmpty, "Cart is empty")
	case errors.Is(err, identity.ErrUnauthenticated):
		response.Error(c, http.StatusUnauthorized, identity.ErrCodeUnauthenticated, "Authentication required")
	case errors.Is(err, identity.ErrForbidden):
		response.Error(c, http.StatusForbidden, identity.ErrCodeForbidden, "Access denied")
	case errors.Is(err, model.ErrOrderNotSaved), errors.Is(err, model.ErrOrdersCorrupt):
		logger.Error("order storage failed", err)
		response.Error(c, http.StatusInternalServerError, model.ErrCodeOrderNotSaved, "Order could not be saved")
	default:
		logger.Error("order request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
