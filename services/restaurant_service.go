package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

type RestaurantService struct {
	DB   *gorm.DB
	Repo *repository.RestaurantRepository
}

func NewRestaurantService(db *gorm.DB, repo *repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{DB: db, Repo: repo}
}

func (s *RestaurantService) List(limit int) ([]entity.Restaurant, error) {
	return s.Repo.List(limit)
}

func (s *RestaurantService) Detail(id uint) (*entity.Restaurant, error) {
	return s.Repo.Get(id)
}

func (s *RestaurantService) ForOwner(userID uint) (*entity.Restaurant, error) {
	return s.Repo.GetForOwner(userID)
}

type RestaurantIn struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	TaxRateBps  int64  `json:"taxRateBps" binding:"min=0"`
	IsOpen      *bool  `json:"isOpen"`
}

func (s *RestaurantService) UpdateForOwner(userID uint, in *RestaurantIn) (*entity.Restaurant, error) {
	rest, err := s.Repo.GetForOwner(userID)
	if err != nil {
		return nil, err
	}
	rest.Name = in.Name
	rest.Address = in.Address
	rest.Description = in.Description
	rest.Phone = in.Phone
	rest.TaxRateBps = in.TaxRateBps
	if in.IsOpen != nil {
		rest.IsOpen = *in.IsOpen
	}
	if err := s.Repo.Save(rest); err != nil {
		return nil, err
	}
	return rest, nil
}

// ----- Back-office dashboard -----

type Dashboard struct {
	OrdersToday   int64 `json:"ordersToday"`
	RevenueToday  int64 `json:"revenueToday"`
	PendingOrders int64 `json:"pendingOrders"`
	LowStockCount int64 `json:"lowStockCount"`
}

func (s *RestaurantService) Dashboard(userID, restID uint) (*Dashboard, error) {
	ok, err := s.Repo.IsOwnedBy(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("forbidden")
	}

	// midnight in the server's zone, not UTC
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var d Dashboard

	if err := s.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND created_at >= ?", restID, startOfDay).
		Count(&d.OrdersToday).Error; err != nil {
		return nil, err
	}

	var revenue struct{ Total int64 }
	if err := s.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("restaurant_id = ? AND created_at >= ? AND status = ?", restID, startOfDay, entity.StatusCompleted).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	d.RevenueToday = revenue.Total

	if err := s.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND status = ?", restID, entity.StatusPending).
		Count(&d.PendingOrders).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&entity.InventoryItem{}).
		Where("restaurant_id = ? AND optimal_stock > 0 AND quantity < optimal_stock * 0.2", restID).
		Count(&d.LowStockCount).Error; err != nil {
		return nil, err
	}

	return &d, nil
}
