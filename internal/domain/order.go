package domain

import "time"

// DeliveryMethod identifies one of the fixed delivery options.
type DeliveryMethod string

const (
	DeliveryStandard DeliveryMethod = "standard"
	DeliveryExpress  DeliveryMethod = "express"
	DeliveryPickup   DeliveryMethod = "pickup"
)

// PaymentMethod identifies how the order is handed off.
type PaymentMethod string

const (
	PaymentWhatsApp PaymentMethod = "whatsapp"
	PaymentCOD      PaymentMethod = "cod"
	PaymentCard     PaymentMethod = "card"
)

// DeliveryOption describes a delivery method's label, fee, and lead time.
type DeliveryOption struct {
	Name     string `json:"name"`
	FeeCents int64  `json:"fee_cents"`
	Estimate string `json:"estimate"`
}

// DeliveryOptions is the fixed delivery price table. Fees are priced
// server-side; client-submitted fees are ignored.
var DeliveryOptions = map[DeliveryMethod]DeliveryOption{
	DeliveryStandard: {Name: "Standard Delivery", FeeCents: 599, Estimate: "3-5 business days"},
	DeliveryExpress:  {Name: "Express Delivery", FeeCents: 1299, Estimate: "1-2 business days"},
	DeliveryPickup:   {Name: "Store Pickup", FeeCents: 0, Estimate: "available today"},
}

// CustomerInfo is the contact and delivery information captured at checkout.
// Name and Phone are required; the rest is optional.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Order is a placed order. Orders are not persisted; they exist in the
// checkout response and in the order.placed event.
type Order struct {
	ID               string         `json:"id"`
	Customer         CustomerInfo   `json:"customer"`
	Items            []CartItem     `json:"items"`
	DeliveryMethod   DeliveryMethod `json:"delivery_method"`
	PaymentMethod    PaymentMethod  `json:"payment_method"`
	SubtotalCents    int64          `json:"subtotal_cents"`
	DeliveryFeeCents int64          `json:"delivery_fee_cents"`
	TotalCents       int64          `json:"total_cents"`
	CreatedAt        time.Time      `json:"created_at"`
}
