package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	UnitPieces = "pieces"
	UnitKg     = "kg"
	UnitLitres = "litres"
	UnitGrams  = "grams"
)

type InventoryItem struct {
	gorm.Model
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`  // pieces | kg | litres | grams
	Price    int64   `json:"price"` // unit cost, minor units
	Quantity float64 `json:"quantity"`

	// target stock level; only used for the derived low-stock percentage
	OptimalStock float64 `json:"optimalStock"`

	// refreshed only when Quantity changes, unlike gorm's UpdatedAt
	LastUpdated time.Time `json:"lastUpdated"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	LinkedItems []InventoryLink `json:"linkedItems,omitempty"`
}
