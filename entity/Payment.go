package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	gorm.Model
	Amount    int64      `json:"amount"`
	Method    string     `json:"method"`
	IntentRef string     `gorm:"index" json:"intentRef"` // processor-side reference
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"` // preload only on /orders/:id
}
