package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"urban-canvas/models"
	"urban-canvas/repositories"
)

// OrderStatusProcessing is the status every new order starts in.
const OrderStatusProcessing = "Processing"

// PaymentMethods is the fixed enumerated set the form accepts.
var PaymentMethods = map[string]bool{
	"cash-on-delivery": true,
	"bikash":           true,
	"credit-card":      true,
	"paypal":           true,
	"etransfer":        true,
}

// ErrDuplicateSubmission marks a checkout whose request key was already
// accepted; the original order stands.
var ErrDuplicateSubmission = errors.New("checkout already submitted")

const (
	idemKeyFormat = "idem:checkout:%s"
	idemTTL       = 24 * time.Hour
)

// ValidationError carries field-level failures; nothing was sent to the
// collaborator when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed"
}

type CheckoutResult struct {
	Order        *models.Order
	WhatsAppLink string
}

// OrderService runs the submission pipeline: validate, compute totals,
// attach identity, persist, build the notification link.
type OrderService struct {
	orders   *repositories.OrderRepository
	whatsapp *WhatsAppService
	events   *OrderEventPublisher // nil when Kafka is not configured
	mailer   *models.EmailService // nil when SMTP is not configured
}

func NewOrderService(orders *repositories.OrderRepository, whatsapp *WhatsAppService, events *OrderEventPublisher, mailer *models.EmailService) *OrderService {
	return &OrderService{orders: orders, whatsapp: whatsapp, events: events, mailer: mailer}
}

// Checkout validates the form and cart, recomputes totals server-side from
// the cart lines, persists the order and returns the WhatsApp deep link.
// requestKey, when present, deduplicates double submissions via Redis.
func (s *OrderService) Checkout(ctx context.Context, form models.CheckoutForm, cart *models.Cart, user *models.OrderUser, requestKey string) (*CheckoutResult, error) {
	fields := ValidateCheckoutForm(form)
	if cart == nil || len(cart.Lines) == 0 {
		fields["cart"] = "cart is empty"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	// The cart lines are the source of truth for money; a client-supplied
	// subtotal is never trusted.
	var subtotal float64
	for _, line := range cart.Lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	taxes := subtotal / models.TaxDivisor

	order := &models.Order{
		Data:        form,
		Products:    cart.Lines,
		Subtotal:    subtotal,
		Shipping:    models.ShippingCost,
		Taxes:       taxes,
		Total:       subtotal + models.ShippingCost + taxes,
		OrderStatus: OrderStatusProcessing,
		OrderDate:   time.Now().UTC().Format(time.RFC3339),
		User:        user,
	}

	release, err := s.claimRequestKey(ctx, requestKey)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Let the client retry with the same key.
		release()
		return nil, err
	}

	link := s.whatsapp.BuildOrderLink(created)

	if s.events != nil {
		s.events.PublishOrderCreated(created)
	}
	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(created.Data.EmailAddress, created); err != nil {
			// Notification failures never fail a persisted order.
			log.Println("order confirmation email failed:", err)
		}
	}

	return &CheckoutResult{Order: created, WhatsAppLink: link}, nil
}

// claimRequestKey takes the idempotency slot for this submission. The
// returned func releases it again, for when persistence fails. Without a
// request key or without Redis the guard is skipped.
func (s *OrderService) claimRequestKey(ctx context.Context, requestKey string) (func(), error) {
	noop := func() {}
	if requestKey == "" || models.RedisClient == nil {
		return noop, nil
	}

	key := fmt.Sprintf(idemKeyFormat, requestKey)
	ok, err := models.RedisClient.SetNX(ctx, key, 1, idemTTL).Result()
	if err != nil {
		// Redis trouble downgrades to unguarded submission.
		return noop, nil
	}
	if !ok {
		return noop, ErrDuplicateSubmission
	}
	return func() {
		_ = models.RedisClient.Del(context.Background(), key).Err()
	}, nil
}

// ValidateCheckoutForm checks every required shipping field and the payment
// method, including the method-specific fields. An empty map means valid.
func ValidateCheckoutForm(form models.CheckoutForm) map[string]string {
	fields := map[string]string{}

	required := map[string]string{
		"firstName":    form.FirstName,
		"lastName":     form.LastName,
		"emailAddress": form.EmailAddress,
		"phone":        form.Phone,
		"address":      form.Address,
		"city":         form.City,
		"region":       form.Region,
		"postalCode":   form.PostalCode,
		"country":      form.Country,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[name] = "is required"
		}
	}

	if !PaymentMethods[form.PaymentType] {
		fields["paymentType"] = "must be one of: cash-on-delivery, bikash, credit-card, paypal, etransfer"
		return fields
	}

	switch form.PaymentType {
	case "bikash":
		if strings.TrimSpace(form.BikashNumber) == "" {
			fields["bikashNumber"] = "is required for bikash payments"
		}
	case "credit-card":
		cardFields := map[string]string{
			"cardNumber":     form.CardNumber,
			"nameOnCard":     form.NameOnCard,
			"expirationDate": form.ExpirationDate,
			"cvc":            form.CVC,
		}
		for name, value := range cardFields {
			if strings.TrimSpace(value) == "" {
				fields[name] = "is required for card payments"
			}
		}
	}

	return fields
}
