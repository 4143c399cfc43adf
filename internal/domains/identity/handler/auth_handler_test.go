package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/identity/repository"
	"storefront-backend/internal/domains/identity/service"
	pricingService "storefront-backend/internal/domains/pricing/service"
	sessionService "storefront-backend/internal/domains/session/service"
	memstore "storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T) (*gin.Engine, *sessionService.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users, err := repository.NewRepository([]repository.UserRecord{{
		Identity: model.Identity{ID: 5, Name: "Ana", Email: "ana@duoc.cl", Role: model.RoleCustomer},
		Password: "duoc1234",
	}}, bcrypt.MinCost)
	require.NoError(t, err)

	tokens := jwt.NewManager("auth-handler-test-secret", time.Hour)
	sessions := sessionService.NewManager(storage.NewAdapter(memstore.NewMemoryStore(), 0), nil, pricingService.NewEligibility(nil), time.Minute)
	config := middleware.DefaultSessionMiddlewareConfig(sessions)
	config.CookieSecure = false

	h := NewHandler(service.NewAuthenticator(users, tokens))
	r := gin.New()
	auth := r.Group("/auth", middleware.SessionMiddleware(config), middleware.OptionalAuthMiddleware(tokens))
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	return r, sessions
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, _ := setupRouter(t)

	w := post(r, "/auth/login", `{"correo":"Ana@duoc.cl","password":"duoc1234"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), `"correo":"ana@duoc.cl"`)
}

func TestLogin_SignsSessionIn(t *testing.T) {
	r, sessions := setupRouter(t)

	w := post(r, "/auth/login", `{"correo":"ana@duoc.cl","password":"duoc1234"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var sid string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)
	session := sessions.Get(context.Background(), sid)
	require.NotNil(t, session.Identity.Current())
	assert.Equal(t, int64(5), session.Identity.Current().ID)
	assert.False(t, session.Cart.Scope().IsGuest())
}

func TestLogin_Errors(t *testing.T) {
	r, _ := setupRouter(t)

	assert.Equal(t, http.StatusUnauthorized, post(r, "/auth/login", `{"correo":"ana@duoc.cl","password":"nope"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(r, "/auth/login", `{"correo":"nadie@duoc.cl","password":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/auth/login", `{"correo":"no-email","password":"x"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, "/auth/login", `{`).Code)
}

func TestLogout(t *testing.T) {
	r, _ := setupRouter(t)

	w := post(r, "/auth/logout", "")

	assert.Equal(t, http.StatusOK, w.Code)
}
