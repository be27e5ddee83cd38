package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"urban-canvas/models"
	"urban-canvas/repositories"
	"urban-canvas/services"
)

type CartController struct {
	carts   *services.CartService
	catalog *repositories.CatalogRepository
}

func NewCartController(carts *services.CartService, catalog *repositories.CatalogRepository) *CartController {
	return &CartController{carts: carts, catalog: catalog}
}

// resolveCartID picks the cart identity: the authenticated user when one is
// attached, otherwise the client-supplied X-Cart-Id header.
func resolveCartID(c *gin.Context) string {
	if id := c.GetString("user_id"); id != "" {
		return "user:" + id
	}
	if id := strings.TrimSpace(c.GetHeader("X-Cart-Id")); id != "" {
		return "guest:" + id
	}
	return ""
}

func (ctrl *CartController) cartID(c *gin.Context) (string, bool) {
	id := resolveCartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "X-Cart-Id header is required for guest carts",
		})
		return "", false
	}
	return id, true
}

func cartFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCartUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Success: false, Message: "Cart storage unavailable"})
	case errors.Is(err, services.ErrLineNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Cart line not found"})
	case errors.Is(err, services.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Quantity must be at least 1"})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update cart"})
	}
}

// @Summary Get cart
// @Tags Cart
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cartID, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	cart, err := ctrl.carts.Get(c.Request.Context(), cartID)
	if err != nil {
		cartFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart retrieved", Data: cart})
}

// @Summary Add cart line
// @Description Snapshot a product into the cart; same product+size+color accumulates quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Param item body models.AddCartItemRequest true "Line to add"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	cartID, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	product, err := ctrl.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
			return
		}
		status, message := collaboratorFailure(err)
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}

	line := models.CartLine{
		ProductID:  product.ID,
		Image:      product.Image,
		Title:      product.Title,
		Category:   product.Category,
		Price:      product.Price,
		Popularity: product.Popularity,
		Stock:      product.Stock,
		Quantity:   req.Quantity,
		Size:       req.Size,
		Color:      req.Color,
	}

	cart, err := ctrl.carts.Add(ctx, cartID, line)
	if err != nil {
		cartFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Added to your cart", Data: cart})
}

// @Summary Update cart line quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Param key path string true "Line key (product id + size + color)"
// @Param item body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{key} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	cartID, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	cart, err := ctrl.carts.SetQuantity(c.Request.Context(), cartID, c.Param("key"), req.Quantity)
	if err != nil {
		cartFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart updated", Data: cart})
}

// @Summary Remove cart line
// @Tags Cart
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Param key path string true "Line key"
// @Success 200 {object} models.Response
// @Router /cart/items/{key} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cartID, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	cart, err := ctrl.carts.Remove(c.Request.Context(), cartID, c.Param("key"))
	if err != nil {
		cartFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Removed from cart", Data: cart})
}

// @Summary Clear cart
// @Tags Cart
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cartID, ok := ctrl.cartID(c)
	if !ok {
		return
	}

	if err := ctrl.carts.Clear(c.Request.Context(), cartID); err != nil {
		cartFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Cart cleared"})
}
