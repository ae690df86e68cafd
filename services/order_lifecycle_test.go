package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

type stubDeductor struct {
	calls  int
	restID uint
	items  []entity.OrderItem
	err    error
}

func (d *stubDeductor) ApplyOrderDeduction(restaurantID uint, items []entity.OrderItem) error {
	d.calls++
	d.restID = restaurantID
	d.items = items
	return d.err
}

func newOrderService(db *gorm.DB, ded InventoryDeductor) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		ded, nil, nil)
}

func seedOrder(t *testing.T, db *gorm.DB, userID, restID uint, orderType string) entity.Order {
	t.Helper()

	o := entity.Order{
		OrderNumber:   NewOrderNumber(),
		Type:          orderType,
		Status:        entity.StatusPending,
		Subtotal:      1000,
		Tax:           100,
		Total:         1100,
		PaymentStatus: entity.PaymentPending,
		UserID:        userID,
		RestaurantID:  restID,
	}
	require.NoError(t, db.Create(&o).Error)

	items := []entity.OrderItem{
		{Name: "Burger", Qty: 2, UnitPrice: 400, Total: 800, OrderID: o.ID, MenuItemID: 1},
		{Name: "Fries", Qty: 1, UnitPrice: 200, Total: 200, OrderID: o.ID, MenuItemID: 2},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
	return o
}

func TestUpdateStatusCompletedDeductsOnce(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	ded := &stubDeductor{}
	svc := newOrderService(db, ded)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)

	require.NoError(t, svc.UpdateStatus(o.ID, entity.StatusCompleted, StatusExtra{}))

	assert.Equal(t, 1, ded.calls, "completion must deduct exactly once")
	assert.Equal(t, rest.ID, ded.restID)
	require.Len(t, ded.items, 2)
	assert.Equal(t, "Burger", ded.items[0].Name)
	assert.Equal(t, 2, ded.items[0].Qty)

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusCompleted, got.Status)
}

func TestUpdateStatusNonCompletedDoesNotDeduct(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	ded := &stubDeductor{}
	svc := newOrderService(db, ded)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeTakeaway)

	for _, status := range []string{
		entity.StatusConfirmed,
		entity.StatusPreparing,
		entity.StatusReady,
		entity.StatusCancelled,
	} {
		require.NoError(t, svc.UpdateStatus(o.ID, status, StatusExtra{}))
	}
	assert.Zero(t, ded.calls)
}

func TestUpdateStatusSkipsIntermediateSteps(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	ded := &stubDeductor{}
	svc := newOrderService(db, ded)

	// pending straight to completed, no intermediate states required
	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	require.NoError(t, svc.UpdateStatus(o.ID, entity.StatusCompleted, StatusExtra{}))

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.Equal(t, 1, ded.calls)
}

func TestUpdateStatusDeductionFailureKeepsStatus(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	ded := &stubDeductor{err: errors.New("stock backend down")}
	svc := newOrderService(db, ded)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)

	require.NoError(t, svc.UpdateStatus(o.ID, entity.StatusCompleted, StatusExtra{}),
		"a failed deduction must not fail the status update")

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusCompleted, got.Status)
	assert.Equal(t, 1, ded.calls)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	ded := &stubDeductor{}
	svc := newOrderService(db, ded)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)

	assert.Error(t, svc.UpdateStatus(o.ID, "exploded", StatusExtra{}))
	assert.Zero(t, ded.calls)

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusPending, got.Status)
}

func TestUpdateStatusDeliveryOnlyStatuses(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	dineIn := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	assert.Error(t, svc.UpdateStatus(dineIn.ID, entity.StatusDelivering, StatusExtra{}))
	assert.Error(t, svc.UpdateStatus(dineIn.ID, entity.StatusDelivered, StatusExtra{}))

	delivery := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDelivery)
	require.NoError(t, svc.UpdateStatus(delivery.ID, entity.StatusDelivering, StatusExtra{}))
}

func TestUpdateStatusCarriesExtras(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)

	require.NoError(t, svc.UpdateStatus(o.ID, entity.StatusConfirmed, StatusExtra{
		PaymentStatus: entity.PaymentPaid,
		PaymentMethod: "card",
	}))

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusConfirmed, got.Status)
	assert.Equal(t, entity.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "card", got.PaymentMethod)
}

func TestDriverAccept(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	driver := entity.User{Email: "driver@test.local", Role: entity.RoleDriver}
	rival := entity.User{Email: "rival@test.local", Role: entity.RoleDriver}
	require.NoError(t, db.Create(&driver).Error)
	require.NoError(t, db.Create(&rival).Error)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDelivery)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", o.ID).
		Update("status", entity.StatusReady).Error)

	require.NoError(t, svc.DriverAccept(driver.ID, o.ID))

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusDelivering, got.Status)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, driver.ID, *got.DriverID)

	// second driver loses the race
	assert.Error(t, svc.DriverAccept(rival.ID, o.ID))
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, driver.ID, *got.DriverID)
}

func TestDriverAcceptRequiresReadyDelivery(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	driver := entity.User{Email: "driver@test.local", Role: entity.RoleDriver}
	require.NoError(t, db.Create(&driver).Error)

	notReady := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDelivery)
	assert.Error(t, svc.DriverAccept(driver.ID, notReady.ID), "still pending")

	dineIn := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", dineIn.ID).
		Update("status", entity.StatusReady).Error)
	assert.Error(t, svc.DriverAccept(driver.ID, dineIn.ID), "not a delivery order")
}

func TestDriverFinish(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := newOrderService(db, &stubDeductor{})

	driver := entity.User{Email: "driver@test.local", Role: entity.RoleDriver}
	other := entity.User{Email: "other@test.local", Role: entity.RoleDriver}
	require.NoError(t, db.Create(&driver).Error)
	require.NoError(t, db.Create(&other).Error)

	o := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDelivery)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", o.ID).
		Update("status", entity.StatusReady).Error)
	require.NoError(t, svc.DriverAccept(driver.ID, o.ID))

	assert.Error(t, svc.DriverFinish(other.ID, o.ID), "only the assigned driver finishes")

	require.NoError(t, svc.DriverFinish(driver.ID, o.ID))

	var got entity.Order
	require.NoError(t, db.First(&got, o.ID).Error)
	assert.Equal(t, entity.StatusDelivered, got.Status)

	assert.Error(t, svc.DriverFinish(driver.ID, o.ID), "already delivered")
}
