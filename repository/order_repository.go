package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForRestaurant(restID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND restaurant_id = ?", orderID, restID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GET /orders (customer) → summary rows only
type OrderSummary struct {
	ID           uint      `json:"id"`
	OrderNumber  string    `json:"orderNumber"`
	RestaurantID uint      `json:"restaurantId"`
	Type         string    `json:"type"`
	Total        int64     `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_number, restaurant_id, type, total, status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// GET /partner/restaurant/order → live board rows with customer name
type OwnerOrderSummary struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"orderNumber"`
	UserID        uint      `json:"userId"`
	CustomerName  string    `json:"customerName"`
	Type          string    `json:"type"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status string, page, limit int) ([]OwnerOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Table("orders AS o").Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		dbCount = dbCount.Where("o.status = ?", status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID            uint
		OrderNumber   string
		UserID        uint
		Type          string
		Total         int64
		Status        string
		PaymentStatus string
		CreatedAt     time.Time
		FirstName     string
		LastName      string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.type, o.total, o.status, o.payment_status, o.created_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID)
	if status != "" {
		db = db.Where("o.status = ?", status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]OwnerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OwnerOrderSummary{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			UserID:        row.UserID,
			CustomerName:  strings.TrimSpace(row.FirstName + " " + row.LastName),
			Type:          row.Type,
			Total:         row.Total,
			Status:        row.Status,
			PaymentStatus: row.PaymentStatus,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, total, nil
}

// ListHistoryForRestaurant returns terminal orders (the admin history view).
// Orders are never deleted; terminal rows are the history.
func (r *OrderRepository) ListHistoryForRestaurant(restID uint, page, limit int) ([]OwnerOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	terminal := entity.TerminalStatuses()

	var total int64
	if err := r.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND status IN ?", restID, terminal).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []OwnerOrderSummary
	err := r.DB.Table("orders AS o").
		Select("o.id, o.order_number, o.user_id, o.type, o.total, o.status, o.payment_status, o.created_at, u.first_name || ' ' || u.last_name AS customer_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.status IN ? AND o.deleted_at IS NULL", restID, terminal).
		Order("o.id DESC").Limit(limit).Offset(offset).
		Scan(&out).Error
	return out, total, err
}

// UpdateStatus writes the new status plus the allowed extra fields in one
// UPDATE. Amounts are never recomputed here.
func (r *OrderRepository) UpdateStatus(tx *gorm.DB, orderID uint, fields map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields).Error
}

// UpdateStatusGuard is a conditional transition: rows affected is 0 when the
// order is not currently in fromStatus (lost race or wrong state).
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, fromStatus string, fields map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, fromStatus).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// AssignDriverGuard claims a ready delivery for one driver. Rows affected
// is 0 when another driver already took it or the order left ready.
func (r *OrderRepository) AssignDriverGuard(tx *gorm.DB, orderID, driverID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ? AND driver_id IS NULL", orderID, entity.StatusReady).
		Updates(map[string]any{"status": entity.StatusDelivering, "driver_id": driverID})
	return res.RowsAffected, res.Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Driver queries ----------------

func (r *OrderRepository) ListAvailableDeliveries(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_number, restaurant_id, type, total, status, created_at").
		Where("type = ? AND status = ? AND driver_id IS NULL", entity.OrderTypeDelivery, entity.StatusReady).
		Order("id ASC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListOrdersForDriver(driverID uint, onlyTerminal bool, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	db := r.DB.Model(&entity.Order{}).
		Select("id, order_number, restaurant_id, type, total, status, created_at").
		Where("driver_id = ?", driverID)
	if onlyTerminal {
		// a delivered order is finished from the driver's point of view
		db = db.Where("status IN ?", append(entity.TerminalStatuses(), entity.StatusDelivered))
	}
	var out []OrderSummary
	err := db.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// ---------------- Validations / helpers ----------------

func (r *OrderRepository) GetMenuItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, name, price, picture, restaurant_id, available").First(&m, id).Error
	return m, err
}

func (r *OrderRepository) ValidateMenuItemsBelongToRestaurant(itemIDs []uint, restID uint) (bool, error) {
	if len(itemIDs) == 0 {
		return true, nil
	}
	var cnt int64
	if err := r.DB.Model(&entity.MenuItem{}).
		Where("id IN ? AND restaurant_id = ?", itemIDs, restID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(itemIDs)), nil
}

// ---------------- Payments ----------------

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}
