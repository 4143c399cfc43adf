package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalog "storefront-backend/internal/domains/catalog/model"
	identity "storefront-backend/internal/domains/identity/model"
	identityService "storefront-backend/internal/domains/identity/service"
	"storefront-backend/internal/domains/order/repository"
	"storefront-backend/internal/domains/order/service"
	pricingService "storefront-backend/internal/domains/pricing/service"
	sessionService "storefront-backend/internal/domains/session/service"
	memstore "storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCheckout = `{"nombre":"Ana","apellidos":"Rojas","direccion":"Av. Siempre Viva 123","region":"Valparaíso","comuna":"Viña del Mar","metodo_pago":"credito"}`

var (
	ana    = &identity.Identity{ID: 5, Name: "Ana", Email: "ana@duoc.cl", Role: identity.RoleCustomer}
	seller = &identity.Identity{ID: 9, Name: "Vera", Email: "vera@tienda.cl", Role: identity.RoleSeller}
)

type fixture struct {
	router   *gin.Engine
	sessions *sessionService.Manager
	tokens   *jwt.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adapter := storage.NewAdapter(memstore.NewMemoryStore(), 0)
	sessions := sessionService.NewManager(adapter, nil, pricingService.NewEligibility(nil), time.Minute)
	tokens := jwt.NewManager("order-handler-test-secret", time.Hour)
	svc := service.NewOrderService(repository.NewAdapterRepository(adapter), nil, time.UTC)

	config := middleware.DefaultSessionMiddlewareConfig(sessions)
	config.CookieSecure = false

	h := NewHandler(svc)
	r := gin.New()
	api := r.Group("", middleware.SessionMiddleware(config), middleware.OptionalAuthMiddleware(tokens))
	api.POST("/checkout", middleware.RequireAuth(), h.Checkout)
	api.GET("/me/orders", middleware.RequireAuth(), h.MyOrders)
	api.GET("/admin/orders", middleware.RequireAuth(), middleware.StaffMiddleware(), h.AllOrders)

	return fixture{router: r, sessions: sessions, tokens: tokens}
}

// device signs user in on a fresh session holding the given units of one product
func (f fixture) device(t *testing.T, user *identity.Identity, units int) string {
	t.Helper()
	ctx := context.Background()
	sid := uuid.New().String()
	session := f.sessions.Get(ctx, sid)
	session.Identity.Login(ctx, user)
	for i := 0; i < units; i++ {
		session.Cart.AddItem(ctx, catalog.Product{ID: 1, Name: "Mouse", Price: decimal.NewFromInt(5000), StockQuantity: 10})
	}
	return sid
}

func (f fixture) do(t *testing.T, method, path, sid string, user *identity.Identity, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sid})
	}
	if user != nil {
		token, err := f.tokens.GenerateAccessToken(identityService.SubjectOf(user))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	sid := f.device(t, ana, 2)

	w := f.do(t, http.MethodPost, "/checkout", sid, ana, validCheckout)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total_formateado":"$10.000"`)
	assert.Contains(t, w.Body.String(), `"metodo_pago":"credito"`)
	assert.Empty(t, f.sessions.Get(context.Background(), sid).Cart.Lines())

	orders := f.do(t, http.MethodGet, "/me/orders", sid, ana, "")
	assert.Equal(t, http.StatusOK, orders.Code)
	assert.Contains(t, orders.Body.String(), `"total":1`)
}

func TestCheckout_DiscountedTotal(t *testing.T) {
	f := newFixture(t)
	sid := f.device(t, ana, 1)
	f.sessions.Get(context.Background(), sid).Toggle.SetActive(context.Background(), true)

	w := f.do(t, http.MethodPost, "/checkout", sid, ana, validCheckout)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"total_formateado":"$4.000"`)
}

func TestCheckout_Errors(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/checkout", "", nil, validCheckout).Code)

	empty := f.device(t, ana, 0)
	w := f.do(t, http.MethodPost, "/checkout", empty, ana, validCheckout)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ORD001")

	sid := f.device(t, ana, 1)
	w = f.do(t, http.MethodPost, "/checkout", sid, ana, `{"nombre":"Ana","region":"Valparaíso","comuna":"Santiago"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
	assert.Len(t, f.sessions.Get(context.Background(), sid).Cart.Lines(), 1)
}

func TestAllOrders_SellerOnly(t *testing.T) {
	f := newFixture(t)
	sid := f.device(t, ana, 1)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/checkout", sid, ana, validCheckout).Code)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodGet, "/admin/orders", "", ana, "").Code)

	w := f.do(t, http.MethodGet, "/admin/orders", "", seller, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	mine := f.do(t, http.MethodGet, "/me/orders", "", seller, "")
	assert.Contains(t, mine.Body.String(), `"total":0`)
}
