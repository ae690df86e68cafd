package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name string `json:"name"`

	// position in the back-office drag-and-drop list
	SortOrder int `json:"sortOrder"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	MenuItems []MenuItem `gorm:"foreignKey:CategoryID" json:"-"` // preload only for full menu view
}
