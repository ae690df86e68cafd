package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email         string `gorm:"uniqueIndex" json:"email"`
	Password      string `json:"-"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PhoneNumber   string `json:"phoneNumber"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`

	Orders []Order `json:"-"` // preload only for admin detail
}
