package entity

import (
	"gorm.io/gorm"
)

// InventoryLink declares how much of one stock item is consumed per sale
// of one menu item. A menu item may link to many inventory items and an
// inventory item to many menu items.
type InventoryLink struct {
	gorm.Model
	QuantityPerItem float64 `json:"quantityPerItem"`

	InventoryItemID uint          `json:"inventoryItemId"`
	InventoryItem   InventoryItem `json:"-"`

	MenuItemID   uint     `json:"menuItemId"`
	MenuItem     MenuItem `json:"-"`
	MenuItemName string   `json:"menuItemName"` // denormalized for the stock screen
}
