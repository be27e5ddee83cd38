package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urban-canvas/models"
	"urban-canvas/repositories"
	"urban-canvas/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProductRouter(t *testing.T, catalogURL string) *gin.Engine {
	t.Helper()
	svc := services.NewProductService(repositories.NewCatalogRepository(catalogURL))
	ctrl := NewProductController(svc)

	router := gin.New()
	router.GET("/products", ctrl.GetProducts)
	router.GET("/products/:id", ctrl.GetProductByID)
	router.GET("/categories", ctrl.GetCategories)
	router.GET("/shop/state", ctrl.GetShopState)
	return router
}

func fakeCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/products":
			_, _ = w.Write([]byte(`[
				{"id": "p1", "title": "Urban Denim Jacket", "category": "jackets", "price": 60, "popularity": 4.8},
				{"id": "p2", "title": "Linen Shirt", "category": "shirts", "price": 25, "popularity": 4.1},
				{"id": "p3", "title": "Wool Coat", "category": "jackets", "price": 90, "popularity": 4.9}
			]`))
		case "/products/p1":
			_, _ = w.Write([]byte(`{"id": "p1", "title": "Urban Denim Jacket", "category": "jackets", "price": 60}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetProductsEnvelope(t *testing.T) {
	router := newProductRouter(t, fakeCatalog(t).URL)

	w := doGet(router, "/products?sort=price-asc")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PaginationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.Showing)
	assert.Equal(t, 1, resp.Meta.Page)
}

func TestGetProductsMissingEndpointMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	t.Cleanup(srv.Close)
	router := newProductRouter(t, srv.URL)

	w := doGet(router, "/products")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.PaginationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Products endpoint not found. Check if the catalog service is running correctly.", resp.Message)
}

func TestGetProductsUnreachableMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	router := newProductRouter(t, srv.URL)

	w := doGet(router, "/products")
	require.Equal(t, http.StatusBadGateway, w.Code)

	// The grid still renders: the envelope carries an empty list, not null.
	var resp struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to load products. Please make sure the catalog service is running.", resp.Message)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestGetProductByIDWithSimilar(t *testing.T) {
	router := newProductRouter(t, fakeCatalog(t).URL)

	w := doGet(router, "/products/p1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Product models.Product   `json:"product"`
			Similar []models.Product `json:"similar"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "p1", resp.Data.Product.ID)
	require.Len(t, resp.Data.Similar, 1)
	assert.Equal(t, "p3", resp.Data.Similar[0].ID)
}

func TestGetProductByIDNotFound(t *testing.T) {
	router := newProductRouter(t, fakeCatalog(t).URL)

	w := doGet(router, "/products/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	router := newProductRouter(t, fakeCatalog(t).URL)

	w := doGet(router, "/categories")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"jackets", "shirts"}, resp.Data)
}

func TestGetShopStateReflectsLastQuery(t *testing.T) {
	router := newProductRouter(t, fakeCatalog(t).URL)

	doGet(router, "/products?category=jackets")
	w := doGet(router, "/shop/state")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data services.ShopState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.TotalItems)
	assert.Equal(t, 2, resp.Data.Showing)
}
