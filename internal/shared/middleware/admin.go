package middleware

import (
	"net/http"

	identityModel "storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// StaffMiddleware admits sellers and administrators. Runs after RequireAuth.
func StaffMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.CanSeeAllOrders() {
			response.Error(c, http.StatusForbidden, identityModel.ErrCodeForbidden, "Access denied: seller or administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
