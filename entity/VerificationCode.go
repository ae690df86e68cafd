package entity

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode holds the single active email verification code per
// address. A new request overwrites the previous row.
type VerificationCode struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Code      string    `json:"-"` // 6 digits, never serialized
	ExpiresAt time.Time `json:"expiresAt"`
}
