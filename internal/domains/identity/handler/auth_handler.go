package handler

import (
	"context"
	"errors"
	"net/http"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type Handler struct {
	auth Authenticator
}

func NewHandler(auth Authenticator) *Handler {
	return &Handler{auth: auth}
}

// Login verifies the credentials, returns an access token and signs the
// device in, which loads the user's saved cart
// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, model.ErrCodeInvalidCredentials, "Invalid email or password")
			return
		}
		logger.Error("login failed", err)
		response.InternalServerError(c, "Login failed")
		return
	}

	session.Identity.Login(c.Request.Context(), resp.User)
	response.Success(c, http.StatusOK, "Login successful", resp)
}

// Logout signs the device out and discards the user's saved cart
// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	session, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	session.Identity.Logout(c.Request.Context())
	response.Success(c, http.StatusOK, "Logout successful", nil)
}
