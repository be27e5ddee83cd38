package models

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"urban-canvas/config"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService builds the confirmation mailer from SMTP configuration.
// Returns an error when SMTP is not configured; callers treat that as
// "email notifications disabled".
func NewEmailService() (*EmailService, error) {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass)

	return &EmailService{dialer: dialer, from: cfg.SMTPFrom}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s - Urban Canvas", order.ID))

	var items strings.Builder
	for _, line := range order.Products {
		fmt.Fprintf(&items,
			`<tr><td style="padding:8px 12px;">%s (%s, %s)</td><td style="padding:8px 12px;text-align:center;">%d</td><td style="padding:8px 12px;text-align:right;">$%.2f</td></tr>`,
			line.Title, line.Color, line.Size, line.Quantity, line.Price*float64(line.Quantity))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .logo { font-size: 24px; font-weight: bold; color: #8b5e3c; }
        table { width: 100%%; border-collapse: collapse; }
        .totals td { padding: 4px 12px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Urban Canvas</div>
        </div>
        <h2 style="color: #333;">Thank you for your order, %s!</h2>
        <p>Your order <strong>#%s</strong> was received on %s and is now <strong>%s</strong>.</p>

        <table>
            <tr style="border-bottom:1px solid #eee;"><th align="left" style="padding:8px 12px;">Item</th><th style="padding:8px 12px;">Qty</th><th align="right" style="padding:8px 12px;">Amount</th></tr>
            %s
        </table>

        <table class="totals" style="margin-top:20px;">
            <tr><td>Subtotal</td><td align="right">$%.2f</td></tr>
            <tr><td>Shipping</td><td align="right">$%.2f</td></tr>
            <tr><td>Taxes</td><td align="right">$%.2f</td></tr>
            <tr><td><strong>Total</strong></td><td align="right"><strong>$%.2f</strong></td></tr>
        </table>

        <p style="margin-top:20px;">Payment method: %s</p>

        <div class="footer">
            <p>This is an automated email. Please do not reply.</p>
        </div>
    </div>
</body>
</html>`,
		order.Data.FirstName, order.ID, order.OrderDate, order.OrderStatus,
		items.String(),
		order.Subtotal, order.Shipping, order.Taxes, order.Total,
		order.Data.PaymentType)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
