package dto

import (
	"time"

	"costume-storefront/internal/cart"
	"costume-storefront/internal/model"
)

type CustomerData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// CheckoutRequest is the checkout endpoint's body. Items may be omitted, in
// which case the caller's stored cart is used.
type CheckoutRequest struct {
	Items        []cart.Item  `json:"items"`
	CustomerData CustomerData `json:"customerData"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"totalItems"`
	TotalPrice float64     `json:"totalPrice"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// BundleSelection picks one bundle sub-item by its display position.
type BundleSelection struct {
	Index    int `json:"index"`
	Quantity int `json:"quantity"`
}

type AddBundleItemsRequest struct {
	Selections []BundleSelection `json:"selections"`
}

type OrderView struct {
	ID              string                `json:"id"`
	CustomerName    string                `json:"customer_name"`
	CustomerEmail   string                `json:"customer_email"`
	TotalAmount     float64               `json:"total_amount"`
	Status          string                `json:"status"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time             `json:"created_at"`
	Items           []OrderItemView       `json:"items"`
}

type OrderItemView struct {
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	TotalPrice   float64 `json:"total_price"`
}
