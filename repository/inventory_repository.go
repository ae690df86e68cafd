package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type InventoryRepository struct {
	DB *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{DB: db}
}

// ListForRestaurant loads the full inventory snapshot with links. The stock
// screen and the deduction engine both read it wholesale; no pagination.
func (r *InventoryRepository) ListForRestaurant(restID uint) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := r.DB.Preload("LinkedItems").
		Where("restaurant_id = ?", restID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *InventoryRepository) GetForRestaurant(restID, itemID uint) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	if err := r.DB.Preload("LinkedItems").
		Where("id = ? AND restaurant_id = ?", itemID, restID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Create(tx *gorm.DB, item *entity.InventoryItem) error {
	return tx.Create(item).Error
}

func (r *InventoryRepository) Save(tx *gorm.DB, item *entity.InventoryItem) error {
	return tx.Save(item).Error
}

func (r *InventoryRepository) Delete(restID, itemID uint) error {
	return r.DB.Where("restaurant_id = ?", restID).Delete(&entity.InventoryItem{}, itemID).Error
}

// UpdateQuantity writes a new stock level and refreshes last_updated only.
func (r *InventoryRepository) UpdateQuantity(tx *gorm.DB, itemID uint, qty float64, now time.Time) error {
	return tx.Model(&entity.InventoryItem{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"quantity": qty, "last_updated": now}).Error
}

// ---------------- Links ----------------

func (r *InventoryRepository) ReplaceLinks(tx *gorm.DB, itemID uint, links []entity.InventoryLink) error {
	if err := tx.Where("inventory_item_id = ?", itemID).
		Unscoped().Delete(&entity.InventoryLink{}).Error; err != nil {
		return err
	}
	for i := range links {
		links[i].InventoryItemID = itemID
		links[i].ID = 0
		if err := tx.Create(&links[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
