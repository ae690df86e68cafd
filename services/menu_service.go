package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/pkg/cache"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

type MenuService struct {
	DB       *gorm.DB
	Repo     *repository.MenuRepository
	RestRepo *repository.RestaurantRepository
	Cache    *cache.MenuCache
}

func NewMenuService(db *gorm.DB, repo *repository.MenuRepository, restRepo *repository.RestaurantRepository, menuCache *cache.MenuCache) *MenuService {
	return &MenuService{DB: db, Repo: repo, RestRepo: restRepo, Cache: menuCache}
}

// ----- Public menu (cached) -----

type PublicCategory struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	SortOrder int               `json:"sortOrder"`
	Items     []entity.MenuItem `json:"items"`
}

type PublicMenu struct {
	RestaurantID uint             `json:"restaurantId"`
	Categories   []PublicCategory `json:"categories"`
	CachedAt     time.Time        `json:"cachedAt"`
}

// PublicMenu serves the customer ordering flow. Reads go through Redis;
// any back-office mutation invalidates the key.
func (s *MenuService) PublicMenu(ctx context.Context, restID uint) (*PublicMenu, error) {
	if raw, err := s.Cache.Get(ctx, restID); err == nil && raw != "" {
		var menu PublicMenu
		if err := json.Unmarshal([]byte(raw), &menu); err == nil {
			return &menu, nil
		}
	} else if err != nil {
		log.Printf("menu cache read failed: %v", err)
	}

	cats, err := s.Repo.ListCategories(restID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListItems(restID, nil)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]entity.MenuItem, len(cats))
	for _, item := range items {
		if !item.Available {
			continue
		}
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	menu := PublicMenu{RestaurantID: restID, CachedAt: time.Now()}
	for _, cat := range cats {
		menu.Categories = append(menu.Categories, PublicCategory{
			ID:        cat.ID,
			Name:      cat.Name,
			SortOrder: cat.SortOrder,
			Items:     byCategory[cat.ID],
		})
	}

	if raw, err := json.Marshal(menu); err == nil {
		if err := s.Cache.Set(ctx, restID, string(raw)); err != nil {
			log.Printf("menu cache write failed: %v", err)
		}
	}
	return &menu, nil
}

func (s *MenuService) invalidate(restID uint) {
	if err := s.Cache.Invalidate(context.Background(), restID); err != nil {
		log.Printf("menu cache invalidate failed: %v", err)
	}
}

// ----- Categories -----

type CategoryIn struct {
	Name string `json:"name" binding:"required"`
}

func (s *MenuService) ListCategories(restID uint) ([]entity.MenuCategory, error) {
	return s.Repo.ListCategories(restID)
}

func (s *MenuService) CreateCategory(restID uint, in *CategoryIn) (*entity.MenuCategory, error) {
	existing, err := s.Repo.ListCategories(restID)
	if err != nil {
		return nil, err
	}
	cat := entity.MenuCategory{
		Name:         in.Name,
		SortOrder:    len(existing), // appended at the end of the list
		RestaurantID: restID,
	}
	if err := s.Repo.CreateCategory(&cat); err != nil {
		return nil, err
	}
	s.invalidate(restID)
	return &cat, nil
}

func (s *MenuService) RenameCategory(restID, catID uint, in *CategoryIn) (*entity.MenuCategory, error) {
	cat, err := s.Repo.GetCategory(restID, catID)
	if err != nil {
		return nil, err
	}
	cat.Name = in.Name
	if err := s.Repo.SaveCategory(cat); err != nil {
		return nil, err
	}
	s.invalidate(restID)
	return cat, nil
}

func (s *MenuService) DeleteCategory(restID, catID uint) error {
	if err := s.Repo.DeleteCategory(restID, catID); err != nil {
		return err
	}
	s.invalidate(restID)
	return nil
}

// ReorderCategories persists the drag-and-drop result: the slice order
// becomes the sort order, written in one transaction.
func (s *MenuService) ReorderCategories(restID uint, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return errors.New("ids is required")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SetCategoryOrder(tx, restID, orderedIDs)
	})
	if err != nil {
		return err
	}
	s.invalidate(restID)
	return nil
}

// ----- Items -----

type MenuItemIn struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        int64           `json:"price" binding:"min=0"`
	Picture      string          `json:"picture"`
	Available    *bool           `json:"available"`
	CategoryID   uint            `json:"categoryId" binding:"required"`
	OptionGroups json.RawMessage `json:"optionGroups"`
}

func (s *MenuService) ListItems(restID uint, catID *uint) ([]entity.MenuItem, error) {
	return s.Repo.ListItems(restID, catID)
}

func (s *MenuService) CreateItem(restID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	if _, err := s.Repo.GetCategory(restID, in.CategoryID); err != nil {
		return nil, errors.New("category not found")
	}
	existing, err := s.Repo.ListItems(restID, &in.CategoryID)
	if err != nil {
		return nil, err
	}

	item := entity.MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Picture:      in.Picture,
		Available:    true,
		SortOrder:    len(existing),
		CategoryID:   in.CategoryID,
		RestaurantID: restID,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if len(in.OptionGroups) > 0 {
		item.OptionGroups = datatypes.JSON(in.OptionGroups)
	}
	if err := s.Repo.CreateItem(&item); err != nil {
		return nil, err
	}
	s.invalidate(restID)
	return &item, nil
}

func (s *MenuService) UpdateItem(restID, itemID uint, in *MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Repo.GetItem(restID, itemID)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price
	if in.Picture != "" {
		item.Picture = in.Picture
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.CategoryID != 0 {
		item.CategoryID = in.CategoryID
	}
	if len(in.OptionGroups) > 0 {
		item.OptionGroups = datatypes.JSON(in.OptionGroups)
	}
	if err := s.Repo.SaveItem(item); err != nil {
		return nil, err
	}
	s.invalidate(restID)
	return item, nil
}

func (s *MenuService) DeleteItem(restID, itemID uint) error {
	if err := s.Repo.DeleteItem(restID, itemID); err != nil {
		return err
	}
	s.invalidate(restID)
	return nil
}

func (s *MenuService) ReorderItems(restID uint, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return errors.New("ids is required")
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.SetItemOrder(tx, restID, orderedIDs)
	})
	if err != nil {
		return err
	}
	s.invalidate(restID)
	return nil
}
