package email

import "time"

// Template defines the interface for email templates.
type Template interface {
	Subject() string
	TemplateName() string
}

// OrderConfirmationEmail represents an order confirmation email.
type OrderConfirmationEmail struct {
	OrderNumber  string
	CustomerName string
	Email        string
	OrderDate    time.Time
	Items        []LineItem
	Total        string // Preformatted, e.g. "299.00"
	ShippingAddr Address
}

func (e OrderConfirmationEmail) Subject() string {
	return "Order Confirmation - " + e.OrderNumber
}

func (e OrderConfirmationEmail) TemplateName() string {
	return "order_confirmation"
}

// ShippingNotificationEmail represents a shipping notification email.
type ShippingNotificationEmail struct {
	OrderNumber  string
	CustomerName string
	Email        string
	ShippedDate  time.Time
	Items        []LineItem
	ShippingAddr Address
}

func (e ShippingNotificationEmail) Subject() string {
	return "Your Order Has Shipped - " + e.OrderNumber
}

func (e ShippingNotificationEmail) TemplateName() string {
	return "shipping_notification"
}

// ContactAcknowledgementEmail confirms receipt of a contact form submission.
type ContactAcknowledgementEmail struct {
	Name  string
	Email string
	Topic string
}

func (e ContactAcknowledgementEmail) Subject() string {
	return "We Received Your Message"
}

func (e ContactAcknowledgementEmail) TemplateName() string {
	return "contact_acknowledgement"
}

// LineItem represents a product line in an order email.
type LineItem struct {
	ProductName string
	Quantity    int
	Price       string // Preformatted unit price
	ImageURL    string // Optional product image
}

// Address represents a shipping address in an email.
type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}
