package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"` // minor units
	Picture     string `json:"picture"`
	Available   bool   `json:"available"`
	SortOrder   int    `json:"sortOrder"`

	// option groups shown in the ordering flow, e.g.
	// [{"name":"Size","choices":[{"label":"L","extra":100}]}]
	OptionGroups datatypes.JSON `json:"optionGroups"`

	CategoryID uint         `json:"categoryId"`
	Category   MenuCategory `json:"-"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderItems []OrderItem     `json:"-"`
	Links      []InventoryLink `json:"-"` // stock consumption declarations
}
