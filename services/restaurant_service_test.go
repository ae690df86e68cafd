package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabilnabti/tapeat-sub001/entity"
	"github.com/nabilnabti/tapeat-sub001/repository"
)

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	owner, rest := seedRestaurant(t, db)
	cust := seedCustomer(t, db)
	svc := NewRestaurantService(db, repository.NewRestaurantRepository(db))

	done := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", done.ID).
		Update("status", entity.StatusCompleted).Error)

	seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeTakeaway) // stays pending

	// a completed order from two days ago must not count as today
	old := seedOrder(t, db, cust.ID, rest.ID, entity.OrderTypeDineIn)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", old.ID).
		Updates(map[string]any{
			"status":     entity.StatusCompleted,
			"created_at": time.Now().Add(-48 * time.Hour),
		}).Error)

	low := entity.InventoryItem{Name: "Buns", Unit: entity.UnitPieces, Quantity: 5, OptimalStock: 100, RestaurantID: rest.ID}
	require.NoError(t, db.Create(&low).Error)

	d, err := svc.Dashboard(owner.ID, rest.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, d.OrdersToday)
	assert.EqualValues(t, 1100, d.RevenueToday, "only today's completed orders count")
	assert.EqualValues(t, 1, d.PendingOrders)
	assert.EqualValues(t, 1, d.LowStockCount)
}

func TestDashboardOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	_, rest := seedRestaurant(t, db)
	stranger := seedCustomer(t, db)
	svc := NewRestaurantService(db, repository.NewRestaurantRepository(db))

	_, err := svc.Dashboard(stranger.ID, rest.ID)
	assert.Error(t, err)
}
