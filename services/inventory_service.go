package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

type InventoryService struct {
	DB   *gorm.DB
	Repo *repository.InventoryRepository
}

func NewInventoryService(db *gorm.DB, repo *repository.InventoryRepository) *InventoryService {
	return &InventoryService{DB: db, Repo: repo}
}

// ----- Deduction engine -----

// ApplyOrderDeduction decrements stock for every inventory item linked to a
// menu item present in the completed order, as one transaction.
//
// The whole inventory is read up front and quantities are computed from that
// snapshot; two orders completing at the same time can both read the same
// starting quantity. Last write wins, same as the store this replaces.
func (s *InventoryService) ApplyOrderDeduction(restaurantID uint, items []entity.OrderItem) error {
	inventory, err := s.Repo.ListForRestaurant(restaurantID)
	if err != nil {
		log.Printf("inventory: snapshot load failed for restaurant %d: %v", restaurantID, err)
		return err
	}

	// ordered qty per menu item id
	ordered := make(map[uint]int, len(items))
	for _, it := range items {
		ordered[it.MenuItemID] += it.Qty
	}

	type pending struct {
		id     uint
		newQty float64
	}
	var updates []pending
	for _, inv := range inventory {
		var total float64
		for _, link := range inv.LinkedItems {
			if qty, ok := ordered[link.MenuItemID]; ok {
				total += float64(qty) * link.QuantityPerItem
			}
		}
		if total <= 0 {
			continue
		}
		newQty := inv.Quantity - total
		if newQty < 0 {
			newQty = 0 // stock is never recorded negative
		}
		if newQty == inv.Quantity {
			continue // no-op, skip the write
		}
		updates = append(updates, pending{id: inv.ID, newQty: newQty})
	}

	if len(updates) == 0 {
		return nil
	}

	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := s.Repo.UpdateQuantity(tx, u.id, u.newQty, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("inventory: deduction batch failed for restaurant %d: %v", restaurantID, err)
		return err
	}
	return nil
}

// ----- CRUD -----

type InventoryItemIn struct {
	Name         string                 `json:"name" binding:"required"`
	Category     string                 `json:"category"`
	Unit         string                 `json:"unit" binding:"required,oneof=pieces kg litres grams"`
	Price        int64                  `json:"price"`
	Quantity     float64                `json:"quantity" binding:"min=0"`
	OptimalStock float64                `json:"optimalStock" binding:"min=0"`
	LinkedItems  []entity.InventoryLink `json:"linkedItems"`
}

func (s *InventoryService) List(restaurantID uint) ([]entity.InventoryItem, error) {
	return s.Repo.ListForRestaurant(restaurantID)
}

func (s *InventoryService) Get(restaurantID, itemID uint) (*entity.InventoryItem, error) {
	return s.Repo.GetForRestaurant(restaurantID, itemID)
}

func (s *InventoryService) Create(restaurantID uint, in *InventoryItemIn) (*entity.InventoryItem, error) {
	item := entity.InventoryItem{
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		Price:        in.Price,
		Quantity:     in.Quantity,
		OptimalStock: in.OptimalStock,
		LastUpdated:  time.Now(),
		RestaurantID: restaurantID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &item); err != nil {
			return err
		}
		return s.Repo.ReplaceLinks(tx, item.ID, in.LinkedItems)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetForRestaurant(restaurantID, item.ID)
}

func (s *InventoryService) Update(restaurantID, itemID uint, in *InventoryItemIn) (*entity.InventoryItem, error) {
	item, err := s.Repo.GetForRestaurant(restaurantID, itemID)
	if err != nil {
		return nil, err
	}

	quantityChanged := item.Quantity != in.Quantity
	item.Name = in.Name
	item.Category = in.Category
	item.Unit = in.Unit
	item.Price = in.Price
	item.Quantity = in.Quantity
	item.OptimalStock = in.OptimalStock
	if quantityChanged {
		item.LastUpdated = time.Now()
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, item); err != nil {
			return err
		}
		return s.Repo.ReplaceLinks(tx, item.ID, in.LinkedItems)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetForRestaurant(restaurantID, itemID)
}

func (s *InventoryService) Delete(restaurantID, itemID uint) error {
	return s.Repo.Delete(restaurantID, itemID)
}

// SetQuantity is the manual stock-count entry path.
func (s *InventoryService) SetQuantity(restaurantID, itemID uint, qty float64) error {
	if qty < 0 {
		return errors.New("quantity must be >= 0")
	}
	item, err := s.Repo.GetForRestaurant(restaurantID, itemID)
	if err != nil {
		return err
	}
	return s.Repo.UpdateQuantity(s.DB, item.ID, qty, time.Now())
}

// LowStockItem carries the derived fill percentage against optimal stock.
type LowStockItem struct {
	entity.InventoryItem
	StockPercent float64 `json:"stockPercent"`
}

// LowStock lists items below the given fill percentage (0-100) of their
// optimal stock. Items without an optimal stock target are skipped.
func (s *InventoryService) LowStock(restaurantID uint, threshold float64) ([]LowStockItem, error) {
	items, err := s.Repo.ListForRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	var out []LowStockItem
	for _, item := range items {
		if item.OptimalStock <= 0 {
			continue
		}
		pct := item.Quantity / item.OptimalStock * 100
		if pct <= threshold {
			out = append(out, LowStockItem{InventoryItem: item, StockPercent: pct})
		}
	}
	return out, nil
}
