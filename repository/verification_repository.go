package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nabilnabti/tapeat-sub001/entity"
)

type VerificationRepository struct {
	DB *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{DB: db}
}

// Upsert keeps one active code per email: a new request replaces the old row.
func (r *VerificationRepository) Upsert(vc *entity.VerificationCode) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at", "updated_at"}),
	}).Create(vc).Error
}

func (r *VerificationRepository) FindByEmail(email string) (*entity.VerificationCode, error) {
	var vc entity.VerificationCode
	if err := r.DB.Where("email = ?", email).First(&vc).Error; err != nil {
		return nil, err
	}
	return &vc, nil
}

// DeleteByEmail removes the code permanently (used after a successful match).
func (r *VerificationRepository) DeleteByEmail(email string) error {
	return r.DB.Unscoped().Where("email = ?", email).Delete(&entity.VerificationCode{}).Error
}
