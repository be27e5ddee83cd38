package models

// ShippingCost and the tax divisor are fixed business constants, not
// configuration.
const (
	ShippingCost = 5.0
	TaxDivisor   = 5.0
)

// CheckoutForm is the shipping/payment form snapshot submitted at checkout.
// Field names mirror the storefront form, which is also the shape the
// collaborator stores under an order's "data" key.
type CheckoutForm struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	EmailAddress   string `json:"emailAddress"`
	Phone          string `json:"phone"`
	Company        string `json:"company,omitempty"`
	Address        string `json:"address"`
	Apartment      string `json:"apartment,omitempty"`
	City           string `json:"city"`
	Region         string `json:"region"`
	PostalCode     string `json:"postalCode"`
	Country        string `json:"country"`
	PaymentType    string `json:"paymentType"`
	BikashNumber   string `json:"bikashNumber,omitempty"`
	CardNumber     string `json:"cardNumber,omitempty"`
	NameOnCard     string `json:"nameOnCard,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	CVC            string `json:"cvc,omitempty"`
}

// OrderUser is the optional authenticated-identity reference attached to an
// order when a logged-in session exists.
type OrderUser struct {
	Email string `json:"email"`
	ID    string `json:"id"`
}

// Order is the record persisted to the collaborator's /orders collection.
// Never mutated after creation.
type Order struct {
	ID          string       `json:"id,omitempty"`
	Data        CheckoutForm `json:"data"`
	Products    []CartLine   `json:"products"`
	Subtotal    float64      `json:"subtotal"`
	Shipping    float64      `json:"shipping"`
	Taxes       float64      `json:"taxes"`
	Total       float64      `json:"total"`
	OrderStatus string       `json:"orderStatus"`
	OrderDate   string       `json:"orderDate"`
	User        *OrderUser   `json:"user,omitempty"`
}
