package repository

import (
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) List(limit int) ([]entity.Restaurant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Restaurant
	err := r.DB.Order("id ASC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Create(rest *entity.Restaurant) error {
	return r.DB.Create(rest).Error
}

func (r *RestaurantRepository) Save(rest *entity.Restaurant) error {
	return r.DB.Save(rest).Error
}

// IsOwnedBy checks restaurant scoping for owner endpoints.
func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *RestaurantRepository) GetForOwner(userID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Where("user_id = ?", userID).First(&rest).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}
