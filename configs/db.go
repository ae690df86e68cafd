package configs

import (
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) {
	var (
		database *gorm.DB
		err      error
	)
	switch cfg.DBDriver {
	case "postgres":
		database, err = gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{})
	default:
		database, err = gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	}
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{},
		&entity.MenuCategory{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.InventoryItem{}, &entity.InventoryLink{},
		&entity.Payment{},
		&entity.VerificationCode{},
	)
}
