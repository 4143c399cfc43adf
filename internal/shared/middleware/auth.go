package middleware

import (
	"net/http"
	"strings"

	identityModel "storefront-backend/internal/domains/identity/model"
	identityService "storefront-backend/internal/domains/identity/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyIdentity        = "identity"
	ContextKeyUserID          = "user_id"
	ContextKeyRole            = "role"
	ContextKeyIsAuthenticated = "is_authenticated"
)

type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// OptionalAuthMiddleware resolves the identity from a Bearer token and feeds
// it to the session's identity observer. A missing or invalid token is a
// guest, which signs out a session that was signed in.
// Runs after SessionMiddleware.
func OptionalAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFromHeader(tokens, c.GetHeader("Authorization"))

		if session, err := GetSession(c); err == nil {
			session.Identity.Set(c.Request.Context(), identity)
		}

		if identity == nil {
			c.Set(ContextKeyIsAuthenticated, false)
			c.Next()
			return
		}

		c.Set(ContextKeyIsAuthenticated, true)
		c.Set(ContextKeyIdentity, identity)
		c.Set(ContextKeyUserID, identity.ID)
		c.Set(ContextKeyRole, string(identity.Role))
		c.Next()
	}
}

func identityFromHeader(tokens TokenValidator, header string) *identityModel.Identity {
	if header == "" {
		return nil
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := tokens.ValidateAccessToken(parts[1])
	if err != nil {
		logger.DebugFields("rejected access token", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return identityService.IdentityFromClaims(claims)
}

// RequireAuth aborts with 401 unless OptionalAuthMiddleware resolved an identity
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			response.Error(c, http.StatusUnauthorized, identityModel.ErrCodeUnauthenticated, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated identity, if any
func GetIdentity(c *gin.Context) (*identityModel.Identity, bool) {
	value, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*identityModel.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

func IsAuthenticated(c *gin.Context) bool {
	return c.GetBool(ContextKeyIsAuthenticated)
}
