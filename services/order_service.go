package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/pkg/events"
	"github.com/nabilnabti/tapeat-sub001/repository"
	"github.com/nabilnabti/tapeat-sub001/ws"
)

// InventoryDeductor is the one side effect the lifecycle triggers on
// completion.
type InventoryDeductor interface {
	ApplyOrderDeduction(restaurantID uint, items []entity.OrderItem) error
}

// FeedBroadcaster pushes order events to live websocket subscribers.
type FeedBroadcaster interface {
	Broadcast(ev ws.OrderEvent)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository

	Inventory InventoryDeductor
	Hub       FeedBroadcaster
	Events    *events.Producer
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	inventory InventoryDeductor,
	hub FeedBroadcaster,
	producer *events.Producer,
) *OrderService {
	return &OrderService{
		DB:        db,
		Repo:      repo,
		RestRepo:  restRepo,
		Inventory: inventory,
		Hub:       hub,
		Events:    producer,
	}
}

// ----- DTOs from controller -----

type CheckoutItemIn struct {
	MenuItemID uint            `json:"menuItemId" binding:"required"`
	Qty        int             `json:"qty" binding:"required,min=1"`
	Excluded   []string        `json:"excluded"`
	Selections json.RawMessage `json:"selections"`
}

type CheckoutReq struct {
	RestaurantID    uint             `json:"restaurantId" binding:"required"`
	Type            string           `json:"type" binding:"required,oneof=dine_in takeaway delivery"`
	TableLabel      string           `json:"tableLabel"`
	DeliveryAddress string           `json:"deliveryAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	Items           []CheckoutItemIn `json:"items" binding:"required"`
}

type CheckoutRes struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Subtotal    int64  `json:"subtotal"`
	Tax         int64  `json:"tax"`
	Total       int64  `json:"total"`
}

// NewOrderNumber generates the human-readable reference shown to customers
// and kitchen staff.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// ----- Checkout -----

func (s *OrderService) Checkout(userID uint, req *CheckoutReq) (*CheckoutRes, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("items is required")
	}
	if req.Type == entity.OrderTypeDelivery && strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, errors.New("delivery address is required")
	}

	rest, err := s.RestRepo.Get(req.RestaurantID)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}

	// the same item may appear on several lines (plain + customized);
	// validate each id once
	seen := make(map[uint]struct{}, len(req.Items))
	itemIDs := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		if _, ok := seen[it.MenuItemID]; ok {
			continue
		}
		seen[it.MenuItemID] = struct{}{}
		itemIDs = append(itemIDs, it.MenuItemID)
	}
	ok, err := s.Repo.ValidateMenuItemsBelongToRestaurant(itemIDs, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("menu item not in this restaurant")
	}

	// snapshot names and prices at purchase time
	var subtotal int64
	lines := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		m, err := s.Repo.GetMenuItemBasics(it.MenuItemID)
		if err != nil {
			return nil, errors.New("menu item not found")
		}
		if !m.Available {
			return nil, errors.New("menu item not available")
		}
		line := entity.OrderItem{
			Name:       m.Name,
			Qty:        it.Qty,
			UnitPrice:  m.Price,
			Total:      m.Price * int64(it.Qty),
			Picture:    m.Picture,
			MenuItemID: m.ID,
		}
		if len(it.Excluded) > 0 {
			raw, _ := json.Marshal(it.Excluded)
			line.Excluded = datatypes.JSON(raw)
		}
		if len(it.Selections) > 0 {
			line.Selections = datatypes.JSON(it.Selections)
		}
		subtotal += line.Total
		lines = append(lines, line)
	}

	tax := subtotal * rest.TaxRateBps / 10000
	total := subtotal + tax

	var out CheckoutRes
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			OrderNumber:     NewOrderNumber(),
			Type:            req.Type,
			Status:          entity.StatusPending,
			TableLabel:      req.TableLabel,
			DeliveryAddress: req.DeliveryAddress,
			Subtotal:        subtotal,
			Tax:             tax,
			Total:           total,
			PaymentStatus:   entity.PaymentPending,
			PaymentMethod:   req.PaymentMethod,
			UserID:          userID,
			RestaurantID:    req.RestaurantID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &lines[i]); err != nil {
				return err
			}
		}

		if req.PaymentMethod != "" {
			p := entity.Payment{
				Amount:  total,
				Method:  req.PaymentMethod,
				Status:  entity.PaymentStatusPending,
				OrderID: order.ID,
			}
			if err := s.Repo.CreatePayment(tx, &p); err != nil {
				return err
			}
		}

		out = CheckoutRes{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Subtotal:    subtotal,
			Tax:         tax,
			Total:       total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(out.ID)
	return &out, nil
}

// ----- List & detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

func (s *OrderService) ownerCheck(restID, userID uint) (bool, error) {
	return s.RestRepo.IsOwnedBy(restID, userID)
}

type OwnerOrderListOut struct {
	Items []repository.OwnerOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForRestaurant(userID, restID uint, status string, page, limit int) (*OwnerOrderListOut, error) {
	ok, err := s.ownerCheck(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("forbidden")
	}

	items, total, err := s.Repo.ListOrdersForRestaurant(restID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &OwnerOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) HistoryForRestaurant(userID, restID uint, page, limit int) (*OwnerOrderListOut, error) {
	ok, err := s.ownerCheck(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("forbidden")
	}

	items, total, err := s.Repo.ListHistoryForRestaurant(restID, page, limit)
	if err != nil {
		return nil, err
	}
	return &OwnerOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForRestaurant(userID, restID, orderID uint) (*OrderDetail, error) {
	ok, err := s.ownerCheck(restID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("forbidden")
	}

	o, err := s.Repo.GetOrderForRestaurant(restID, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

// notify pushes the order's current state to websocket subscribers and the
// event stream. Best-effort on both legs.
func (s *OrderService) notify(orderID uint) {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return
	}
	if s.Hub != nil {
		s.Hub.Broadcast(ws.OrderEvent{
			OrderID:       o.ID,
			OrderNumber:   o.OrderNumber,
			RestaurantID:  o.RestaurantID,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			DriverID:      o.DriverID,
			UpdatedAt:     o.UpdatedAt,
		})
	}
	s.Events.Publish(context.Background(), events.OrderEvent{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		OccurredAt:   time.Now(),
	})
}
