package services

import (
	"fmt"
	"net/url"
	"strings"

	"urban-canvas/models"
)

// WhatsAppService builds pre-filled wa.me deep links for order notifications.
// Stateless: the recipient number and country code are injected once from
// configuration instead of living on a mutable singleton.
type WhatsAppService struct {
	recipient   string
	countryCode string
}

func NewWhatsAppService(recipient, countryCode string) *WhatsAppService {
	return &WhatsAppService{recipient: recipient, countryCode: countryCode}
}

// NormalizePhone applies the delivery-routing rules: strip formatting
// (everything but digits and '+'), then at most one rewrite fires — an
// 11-digit local "01..." number or a leading-0 trunk number swaps the 0 for
// the country code, a bare 10-digit number gets the country code prepended.
// "01887569963" becomes "8801887569963"; anything else is left as dialed.
func (s *WhatsAppService) NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	switch {
	case strings.HasPrefix(clean, "01") && len(clean) == 11:
		clean = s.countryCode + clean[1:]
	case strings.HasPrefix(clean, "0") && !strings.HasPrefix(clean, "01"):
		clean = s.countryCode + clean[1:]
	case len(clean) == 10 && !strings.HasPrefix(clean, "+"):
		clean = s.countryCode + clean
	}

	// wa.me wants the bare number, no '+'.
	return strings.ReplaceAll(clean, "+", "")
}

// ValidPhone checks the length band WhatsApp routes.
func (s *WhatsAppService) ValidPhone(phone string) bool {
	n := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n >= 10 && n <= 15
}

// BuildOrderLink URL-encodes the formatted order message into a
// https://wa.me/<recipient>?text=<message> deep link. Link construction
// always succeeds; opening it is the client's affordance.
func (s *WhatsAppService) BuildOrderLink(order *models.Order) string {
	number := s.NormalizePhone(s.recipient)
	message := s.FormatOrderMessage(order)
	// wa.me wants %20 for spaces, not the '+' QueryEscape produces.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + encoded
}

// FormatOrderMessage renders the multi-line notification text: customer
// info, address, numbered line items, payment method and totals.
func (s *WhatsAppService) FormatOrderMessage(order *models.Order) string {
	data := order.Data

	var b strings.Builder
	b.WriteString("*NEW ORDER RECEIVED*\n\n")

	b.WriteString("*Customer Details:*\n")
	fmt.Fprintf(&b, "Name: %s %s\n", data.FirstName, data.LastName)
	fmt.Fprintf(&b, "Phone: %s\n", data.Phone)
	fmt.Fprintf(&b, "Email: %s\n", data.EmailAddress)
	fmt.Fprintf(&b, "Address: %s, %s, %s, %s - %s\n\n",
		data.Address, data.City, data.Region, data.Country, data.PostalCode)

	b.WriteString("*Order Items:*\n")
	for i, line := range order.Products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line.Title)
		fmt.Fprintf(&b, "   Color: %s | Size: %s\n", line.Color, line.Size)
		fmt.Fprintf(&b, "   Price: $%g x %d = $%.2f\n\n",
			line.Price, line.Quantity, line.Price*float64(line.Quantity))
	}

	fmt.Fprintf(&b, "*Payment Method:* %s\n", data.PaymentType)
	if data.PaymentType == "bikash" && data.BikashNumber != "" {
		fmt.Fprintf(&b, "Bikash Number: %s\n", data.BikashNumber)
	}
	if data.PaymentType == "credit-card" && data.NameOnCard != "" {
		fmt.Fprintf(&b, "Card Holder: %s\n", data.NameOnCard)
	}
	b.WriteString("\n")

	b.WriteString("*Order Summary:*\n")
	fmt.Fprintf(&b, "Subtotal: $%.2f\n", order.Subtotal)
	fmt.Fprintf(&b, "Shipping: $%.2f\n", order.Shipping)
	fmt.Fprintf(&b, "Taxes: $%.2f\n", order.Taxes)
	fmt.Fprintf(&b, "*Total: $%.2f*\n\n", order.Total)

	fmt.Fprintf(&b, "Order Date: %s\n", order.OrderDate)
	if order.ID != "" {
		fmt.Fprintf(&b, "Order ID: #%s", order.ID)
	}

	return strings.TrimSpace(b.String())
}
