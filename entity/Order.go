package entity

import (
	"gorm.io/gorm"
)

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
	OrderTypeDelivery = "delivery"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusPreparing  = "preparing"
	StatusReady      = "ready"
	StatusDelivering = "delivering"
	StatusDelivered  = "delivered"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// TerminalStatuses lists the states the back-office treats as history;
// orders never leave them.
func TerminalStatuses() []string {
	return []string{StatusCompleted, StatusCancelled}
}

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"uniqueIndex" json:"orderNumber"`
	Type        string `json:"type"`   // dine_in | takeaway | delivery
	Status      string `json:"status"` // see Status* constants

	TableLabel      string `json:"tableLabel,omitempty"`      // dine_in only
	DeliveryAddress string `json:"deliveryAddress,omitempty"` // delivery only

	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"` // subtotal + tax

	PaymentStatus string `json:"paymentStatus"` // pending | paid
	PaymentMethod string `json:"paymentMethod"` // card | cash | apple_pay | ...

	DriverID *uint `json:"driverId,omitempty"` // set when a driver accepts
	Driver   *User `json:"-"`

	UserID uint `json:"userId"`
	User   User `json:"-"` // preload only when customer detail is needed

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items    []OrderItem `json:"items,omitempty"`
	Payments []Payment   `json:"-"`
}
