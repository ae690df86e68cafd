package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderItem is a snapshot of the menu item at purchase time; later menu
// edits must not change past orders.
type OrderItem struct {
	gorm.Model
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	Picture   string `json:"picture,omitempty"`

	Excluded   datatypes.JSON `json:"excluded,omitempty"`   // ["onion", ...]
	Selections datatypes.JSON `json:"selections,omitempty"` // chosen options

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload only when the live menu row is needed
}
