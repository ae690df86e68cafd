package repository

import (
	"gorm.io/gorm"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) Save(u *entity.User) error {
	return r.DB.Save(u).Error
}

func (r *UserRepository) MarkVerified(email string) error {
	return r.DB.Model(&entity.User{}).
		Where("email = ?", email).
		Update("email_verified", true).Error
}
