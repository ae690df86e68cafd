package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
	Phone       string `json:"phone"`
	IsOpen      bool   `json:"isOpen"`

	// tax rate in basis points (850 = 8.5%)
	TaxRateBps int64 `json:"taxRateBps"`

	UserID uint `json:"userId"` // owner (users.id)
	User   User `json:"-"`

	Categories []MenuCategory  `json:"-"`
	MenuItems  []MenuItem      `json:"-"`
	Inventory  []InventoryItem `json:"-"`
	Orders     []Order         `json:"-"`
}
