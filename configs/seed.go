package configs

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

// SeedAdmin creates the platform admin on first boot.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:         email,
		Password:      string(hash),
		FirstName:     "Admin",
		LastName:      "Seed",
		Role:          entity.RoleAdmin,
		EmailVerified: true,
	}
	return db.Create(&admin).Error
}
