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

type CheckoutController struct {
	orders *services.OrderService
	carts  *services.CartService
}

func NewCheckoutController(orders *services.OrderService, carts *services.CartService) *CheckoutController {
	return &CheckoutController{orders: orders, carts: carts}
}

func paymentMessage(paymentType string) string {
	switch paymentType {
	case "cash-on-delivery":
		return "Order placed! Payment will be collected on delivery."
	case "bikash":
		return "Order placed! Please complete payment via Bikash."
	default:
		return "Order placed successfully!"
	}
}

// @Summary Submit order
// @Description Validate the checkout form, persist the order and return the WhatsApp share link
// @Tags Checkout
// @Accept json
// @Produce json
// @Param X-Cart-Id header string false "Guest cart id"
// @Param X-Request-Key header string false "Idempotency key guarding double submission"
// @Param form body models.CheckoutForm true "Shipping and payment form"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.FieldErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	cartID, ok := checkoutCartID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	cart, err := ctrl.carts.Get(ctx, cartID)
	if err != nil {
		cartFailure(c, err)
		return
	}

	var user *models.OrderUser
	if id := c.GetString("user_id"); id != "" {
		user = &models.OrderUser{ID: id, Email: c.GetString("user_email")}
	}

	requestKey := strings.TrimSpace(c.GetHeader("X-Request-Key"))

	result, err := ctrl.orders.Checkout(ctx, form, cart, user, requestKey)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, models.FieldErrorResponse{
				Success: false,
				Message: "Checkout validation failed",
				Fields:  verr.Fields,
			})
		case errors.Is(err, services.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: "This order was already submitted"})
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Orders endpoint not found. Check if the catalog service is running correctly."})
		default:
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Success: false, Message: "Something went wrong, please try again later"})
		}
		return
	}

	// Submission empties the cart; a failure here must not undo a
	// persisted order.
	_ = ctrl.carts.Clear(ctx, cartID)

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: paymentMessage(form.PaymentType),
		Data: gin.H{
			"order":        result.Order,
			"whatsapp_url": result.WhatsAppLink,
		},
	})
}

func checkoutCartID(c *gin.Context) (string, bool) {
	id := resolveCartID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "X-Cart-Id header is required for guest checkout",
		})
		return "", false
	}
	return id, true
}
