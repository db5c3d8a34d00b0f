package model

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type ShippingAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Order struct {
	ID            string `gorm:"primaryKey;size:64;not null"`
	SessionID     string `gorm:"size:128;uniqueIndex"` // provider checkout-session id
	CartID        string `gorm:"size:64;index"`
	CustomerName  string `gorm:"size:128"`
	CustomerEmail string `gorm:"size:128"`
	TotalAmount   float64
	// pending, completed, cancelled
	Status          string          `gorm:"size:32;index;not null"`
	ShippingAddress ShippingAddress `gorm:"serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK -> orders.id
	OrderID      string `gorm:"size:64;index;not null"`
	ProductName  string `gorm:"size:128;not null"`
	ProductImage string `gorm:"size:256"`
	Quantity     int    `gorm:"not null"`
	UnitPrice    float64
	// invariant: TotalPrice == UnitPrice * Quantity
	TotalPrice float64
	CreatedAt  time.Time
}
