package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"urban-canvas/models"
)

func TestNormalizePhone(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"eleven-digit local number", "01887569963", "8801887569963"},
		{"formatting stripped, already prefixed", "+880 1843-426422", "8801843426422"},
		{"bare ten-digit local number", "1887569963", "8801887569963"},
		{"dashes and spaces", "018-8756 9963", "8801887569963"},
		{"leading zero without 01", "0412345678", "880412345678"},
		// At most one rewrite fires: a short leading-01 number is not a
		// valid local number and must not collect the country code twice.
		{"eight-digit leading 01 left alone", "01234567", "01234567"},
		{"short local fragment left alone", "016234", "016234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.NormalizePhone(tt.phone))
		})
	}
}

func TestValidPhone(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	assert.True(t, svc.ValidPhone("01887569963"))
	assert.True(t, svc.ValidPhone("+880 1843-426422"))
	assert.False(t, svc.ValidPhone("12345"))
	assert.False(t, svc.ValidPhone("1234567890123456"))
	assert.False(t, svc.ValidPhone(""))
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID: "41",
		Data: models.CheckoutForm{
			FirstName:    "Rahim",
			LastName:     "Uddin",
			EmailAddress: "rahim@example.com",
			Phone:        "01712345678",
			Address:      "12 Lake Road",
			City:         "Dhaka",
			Region:       "Dhaka",
			PostalCode:   "1207",
			Country:      "Bangladesh",
			PaymentType:  "cash-on-delivery",
		},
		Products: []models.CartLine{
			{Title: "Urban Denim Jacket", Color: "blue", Size: "M", Price: 50, Quantity: 2},
		},
		Subtotal:    100,
		Shipping:    5,
		Taxes:       20,
		Total:       125,
		OrderStatus: "Processing",
		OrderDate:   "2026-08-28T10:00:00Z",
	}
}

func TestBuildOrderLink(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	link := svc.BuildOrderLink(sampleOrder())

	assert.True(t, strings.HasPrefix(link, "https://wa.me/8801887569963?text="), link)
	// wa.me needs percent-encoded spaces; '+' renders literally in the chat.
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")
	assert.Contains(t, link, "%0A") // newlines survive encoding
}

func TestFormatOrderMessage(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	msg := svc.FormatOrderMessage(sampleOrder())

	assert.Contains(t, msg, "*NEW ORDER RECEIVED*")
	assert.Contains(t, msg, "Name: Rahim Uddin")
	assert.Contains(t, msg, "1. Urban Denim Jacket")
	assert.Contains(t, msg, "Color: blue | Size: M")
	assert.Contains(t, msg, "Price: $50 x 2 = $100.00")
	assert.Contains(t, msg, "*Payment Method:* cash-on-delivery")
	assert.Contains(t, msg, "Subtotal: $100.00")
	assert.Contains(t, msg, "Shipping: $5.00")
	assert.Contains(t, msg, "Taxes: $20.00")
	assert.Contains(t, msg, "*Total: $125.00*")
	assert.Contains(t, msg, "Order ID: #41")
	assert.NotContains(t, msg, "Bikash Number")
}

func TestFormatOrderMessagePaymentDetails(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	order := sampleOrder()
	order.Data.PaymentType = "bikash"
	order.Data.BikashNumber = "01899999999"
	msg := svc.FormatOrderMessage(order)
	assert.Contains(t, msg, "Bikash Number: 01899999999")

	order = sampleOrder()
	order.Data.PaymentType = "credit-card"
	order.Data.NameOnCard = "RAHIM UDDIN"
	msg = svc.FormatOrderMessage(order)
	assert.Contains(t, msg, "Card Holder: RAHIM UDDIN")
}

func TestFormatOrderMessageOmitsMissingOrderID(t *testing.T) {
	svc := NewWhatsAppService("01887569963", "880")

	order := sampleOrder()
	order.ID = ""
	msg := svc.FormatOrderMessage(order)
	assert.NotContains(t, msg, "Order ID")
}
