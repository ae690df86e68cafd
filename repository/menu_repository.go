package repository

import (
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ---------------- Categories ----------------

func (r *MenuRepository) ListCategories(restID uint) ([]entity.MenuCategory, error) {
	var cats []entity.MenuCategory
	err := r.DB.Where("restaurant_id = ?", restID).
		Order("sort_order ASC, id ASC").
		Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) GetCategory(restID, catID uint) (*entity.MenuCategory, error) {
	var cat entity.MenuCategory
	if err := r.DB.Where("id = ? AND restaurant_id = ?", catID, restID).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *MenuRepository) CreateCategory(cat *entity.MenuCategory) error {
	return r.DB.Create(cat).Error
}

func (r *MenuRepository) SaveCategory(cat *entity.MenuCategory) error {
	return r.DB.Save(cat).Error
}

func (r *MenuRepository) DeleteCategory(restID, catID uint) error {
	return r.DB.Where("restaurant_id = ?", restID).Delete(&entity.MenuCategory{}, catID).Error
}

// ---------------- Items ----------------

func (r *MenuRepository) ListItems(restID uint, catID *uint) ([]entity.MenuItem, error) {
	db := r.DB.Where("restaurant_id = ?", restID)
	if catID != nil && *catID != 0 {
		db = db.Where("category_id = ?", *catID)
	}
	var items []entity.MenuItem
	err := db.Order("sort_order ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetItem(restID, itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := r.DB.Where("id = ? AND restaurant_id = ?", itemID, restID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) CreateItem(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

func (r *MenuRepository) SaveItem(item *entity.MenuItem) error {
	return r.DB.Save(item).Error
}

func (r *MenuRepository) DeleteItem(restID, itemID uint) error {
	return r.DB.Where("restaurant_id = ?", restID).Delete(&entity.MenuItem{}, itemID).Error
}

// ---------------- Reordering ----------------

// SetCategoryOrder persists a drag-and-drop sequence: position in the slice
// becomes sort_order. Runs inside the caller's transaction.
func (r *MenuRepository) SetCategoryOrder(tx *gorm.DB, restID uint, orderedIDs []uint) error {
	for pos, id := range orderedIDs {
		res := tx.Model(&entity.MenuCategory{}).
			Where("id = ? AND restaurant_id = ?", id, restID).
			Update("sort_order", pos)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}

func (r *MenuRepository) SetItemOrder(tx *gorm.DB, restID uint, orderedIDs []uint) error {
	for pos, id := range orderedIDs {
		res := tx.Model(&entity.MenuItem{}).
			Where("id = ? AND restaurant_id = ?", id, restID).
			Update("sort_order", pos)
		if res.Error != nil {
			return res.Error
		}
	}
	return nil
}
