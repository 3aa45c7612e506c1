package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/api/middleware"
	"github.com/hsapparel/storefront/internal/cart"
	"github.com/hsapparel/storefront/internal/config"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/internal/service"
)

func cartRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	carts := cart.NewManager(t.TempDir())
	checkout := service.NewCheckoutService(
		&repository.Repositories{},
		service.NewPricer(config.ShippingConfig{}),
		logger,
	)

	router := gin.New()
	group := router.Group("/v1")
	group.Use(middleware.CartSessionMiddleware())
	group.GET("/cart", HandleGetCart(carts, checkout, logger))
	group.POST("/cart/items", HandleAddCartItem(carts, checkout, logger))
	group.PUT("/cart/items", HandleSetCartQuantity(carts, checkout, logger))
	group.DELETE("/cart/items", HandleRemoveCartItem(carts, checkout, logger))
	group.DELETE("/cart", HandleClearCart(carts, checkout, logger))
	return router
}

type cartClient struct {
	t       *testing.T
	router  *gin.Engine
	session string
}

func (c *cartClient) do(method, path, body string) (*httptest.ResponseRecorder, CartResponse) {
	c.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: c.session})
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie {
			c.session = cookie.Value
		}
	}

	var resp CartResponse
	if rec.Code == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func addItemBody(productID uuid.UUID, size string, qty int, price int64) string {
	body, _ := json.Marshal(AddItemRequest{
		ProductID: productID.String(),
		Name:      "Classic Denim Shorts",
		UnitPrice: price,
		Quantity:  qty,
		Size:      size,
	})
	return string(body)
}

func TestCartLifecycle(t *testing.T) {
	client := &cartClient{t: t, router: cartRouter(t)}
	productID := uuid.New()

	rec, resp := client.do(http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Lines)
	assert.NotEmpty(t, client.session, "first visit must set the session cookie")

	rec, resp = client.do(http.MethodPost, "/v1/cart/items", addItemBody(productID, "M", 2, 1500))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.TotalItems)
	// 3000 >= 2000, free shipping
	assert.Equal(t, int64(3000), resp.Totals.GrandTotal)

	// same product and size merges quantities
	rec, resp = client.do(http.MethodPost, "/v1/cart/items", addItemBody(productID, "M", 1, 1500))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 3, resp.TotalItems)

	// a different size is its own line
	rec, resp = client.do(http.MethodPost, "/v1/cart/items", addItemBody(productID, "L", 1, 1500))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Lines, 2)

	setBody, _ := json.Marshal(SetQuantityRequest{ProductID: productID.String(), Size: "M", Quantity: 1})
	rec, resp = client.do(http.MethodPut, "/v1/cart/items", string(setBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, resp.TotalItems)

	rec, resp = client.do(http.MethodDelete, "/v1/cart/items?product_id="+productID.String()+"&size=L", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "M", resp.Lines[0].Size)

	rec, resp = client.do(http.MethodDelete, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Lines)
	assert.Equal(t, 0, resp.TotalItems)
}

func TestCartIsolatedPerSession(t *testing.T) {
	router := cartRouter(t)
	first := &cartClient{t: t, router: router}
	second := &cartClient{t: t, router: router}

	rec, _ := first.do(http.MethodPost, "/v1/cart/items", addItemBody(uuid.New(), "S", 1, 900))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := second.do(http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Lines, "a new visitor must not see another session's cart")
	assert.NotEqual(t, first.session, second.session)
}

func TestAddCartItem_RejectsBadPayloads(t *testing.T) {
	client := &cartClient{t: t, router: cartRouter(t)}

	// missing required fields
	rec, _ := client.do(http.MethodPost, "/v1/cart/items", `{"product_id":"`+uuid.New().String()+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// quantity below one
	rec, _ = client.do(http.MethodPost, "/v1/cart/items", addItemBody(uuid.New(), "M", 0, 1500))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// unparseable product id
	rec, _ = client.do(http.MethodPost, "/v1/cart/items",
		`{"product_id":"not-a-uuid","name":"x","unit_price":100,"quantity":1,"size":"M"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveCartItem_RequiresSize(t *testing.T) {
	client := &cartClient{t: t, router: cartRouter(t)}

	rec, _ := client.do(http.MethodDelete, "/v1/cart/items?product_id="+uuid.New().String(), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgedSessionCookieIsReplaced(t *testing.T) {
	client := &cartClient{t: t, router: cartRouter(t), session: "../../etc/passwd"}

	rec, _ := client.do(http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(client.session)
	assert.NoError(t, err, "forged cookie must be replaced with a fresh uuid")
}
