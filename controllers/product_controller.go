package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"urban-canvas/models"
	"urban-canvas/repositories"
	"urban-canvas/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func productCacheKey(search, category, sortBy string, page, limit int) string {
	return fmt.Sprintf("products_list_q%s_c%s_s%s_p%d_l%d", search, category, sortBy, page, limit)
}

// collaboratorFailure maps a fetch failure to the user-facing distinction
// the storefront draws: missing endpoint versus unreachable service.
func collaboratorFailure(err error) (int, string) {
	if errors.Is(err, repositories.ErrNotFound) {
		return http.StatusNotFound, "Products endpoint not found. Check if the catalog service is running correctly."
	}
	return http.StatusBadGateway, "Failed to load products. Please make sure the catalog service is running."
}

// @Summary List products
// @Description Search, filter, sort and paginate the product catalog
// @Tags Products
// @Produce json
// @Param search query string false "Case-insensitive title substring"
// @Param category query string false "Exact category match"
// @Param sort query string false "Sort criteria" Enums(price-asc, price-desc, popularity)
// @Param page query int false "Page number (9 items per page)" default(1)
// @Param limit query int false "Take the first N items instead of paging"
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	category := strings.TrimSpace(c.Query("category"))
	sortBy := strings.TrimSpace(c.Query("sort"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 0 {
		limit = 0
	}

	ctx := c.Request.Context()
	cacheKey := productCacheKey(search, category, sortBy, page, limit)

	if models.RedisClient != nil {
		if cached, err := models.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
			// A cache hit still counts as a completed query for the
			// "Showing N of Total" observer.
			var cachedResp models.PaginationResponse
			if json.Unmarshal([]byte(cached), &cachedResp) == nil {
				ctrl.products.RestoreState(cachedResp.Meta.Showing, cachedResp.Meta.TotalItems)
			}
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	result, err := ctrl.products.Query(ctx, services.ProductQuery{
		Search:   search,
		Sort:     sortBy,
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		status, message := collaboratorFailure(err)
		c.JSON(status, models.PaginationResponse{
			Success: false,
			Message: message,
			Data:    []models.Product{},
		})
		return
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    result.Items,
		Meta: models.QueryMeta{
			Page:       page,
			Limit:      limit,
			Showing:    result.Showing,
			TotalItems: result.Total,
		},
	}

	if models.RedisClient != nil {
		if jsonData, err := json.Marshal(response); err == nil {
			models.RedisClient.Set(ctx, cacheKey, jsonData, 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product by ID
// @Description Get product details with up to three similar products
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	product, err := ctrl.products.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
			return
		}
		status, message := collaboratorFailure(err)
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}

	// Similar products are a nicety; the view renders without them.
	similar, err := ctrl.products.SimilarProducts(ctx, product)
	if err != nil {
		similar = []models.Product{}
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data: gin.H{
			"product": product,
			"similar": similar,
		},
	})
}

// @Summary List categories
// @Description Distinct categories of the current catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	categories, err := ctrl.products.Categories(c.Request.Context())
	if err != nil {
		status, message := collaboratorFailure(err)
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Categories retrieved", Data: categories})
}

// @Summary Shop state
// @Description Latest "Showing N of Total" counters published by the query pipeline
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /shop/state [get]
func (ctrl *ProductController) GetShopState(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Shop state retrieved",
		Data:    ctrl.products.State(),
	})
}
