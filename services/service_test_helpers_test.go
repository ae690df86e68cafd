package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

var testDBSeq atomic.Int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// shared cache so every pooled connection sees the same database;
	// a unique name per test keeps tests isolated from each other
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{},
		&entity.MenuCategory{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.InventoryItem{}, &entity.InventoryLink{},
		&entity.Payment{},
		&entity.VerificationCode{},
	))
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB) (entity.User, entity.Restaurant) {
	t.Helper()

	owner := entity.User{Email: "owner@test.local", Role: entity.RoleOwner, FirstName: "Olive", LastName: "Owner"}
	require.NoError(t, db.Create(&owner).Error)

	rest := entity.Restaurant{Name: "Test Kitchen", UserID: owner.ID, IsOpen: true, TaxRateBps: 1000}
	require.NoError(t, db.Create(&rest).Error)
	return owner, rest
}

func seedCustomer(t *testing.T, db *gorm.DB) entity.User {
	t.Helper()

	u := entity.User{Email: "customer@test.local", Role: entity.RoleCustomer, FirstName: "Carl", LastName: "Customer"}
	require.NoError(t, db.Create(&u).Error)
	return u
}
