package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urban-canvas/repositories"
	"urban-canvas/services"
)

func newCheckoutRouter(t *testing.T, ordersURL string) *gin.Engine {
	t.Helper()
	orderSvc := services.NewOrderService(
		repositories.NewOrderRepository(ordersURL),
		services.NewWhatsAppService("01887569963", "880"),
		nil, nil,
	)
	ctrl := NewCheckoutController(orderSvc, services.NewCartService())

	router := gin.New()
	router.POST("/checkout", ctrl.Checkout)
	return router
}

func postCheckout(router *gin.Engine, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutRequiresCartIdentity(t *testing.T) {
	router := newCheckoutRouter(t, "http://localhost:0")

	w := postCheckout(router, `{"firstName": "Rahim"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "X-Cart-Id")
}

func TestCheckoutRejectsBrokenBody(t *testing.T) {
	router := newCheckoutRouter(t, "http://localhost:0")

	w := postCheckout(router, `{"firstName": `, map[string]string{"X-Cart-Id": "abc"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestCheckoutWithoutCartStorage(t *testing.T) {
	// No Redis in tests, so the cart store reports unavailable before any
	// order is assembled.
	router := newCheckoutRouter(t, "http://localhost:0")

	w := postCheckout(router, `{"firstName": "Rahim"}`, map[string]string{"X-Cart-Id": "abc"})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Cart storage unavailable")
}

func TestPaymentMessage(t *testing.T) {
	assert.Equal(t, "Order placed! Payment will be collected on delivery.", paymentMessage("cash-on-delivery"))
	assert.Equal(t, "Order placed! Please complete payment via Bikash.", paymentMessage("bikash"))
	assert.Equal(t, "Order placed successfully!", paymentMessage("credit-card"))
	assert.Equal(t, "Order placed successfully!", paymentMessage("paypal"))
}

func TestResolveCartID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("authenticated user wins", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
		c.Request.Header.Set("X-Cart-Id", "abc")
		c.Set("user_id", "u1")
		assert.Equal(t, "user:u1", resolveCartID(c))
	})

	t.Run("guest header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
		c.Request.Header.Set("X-Cart-Id", " abc ")
		assert.Equal(t, "guest:abc", resolveCartID(c))
	})

	t.Run("no identity", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
		assert.Equal(t, "", resolveCartID(c))
	})
}
