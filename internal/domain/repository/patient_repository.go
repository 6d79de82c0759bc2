package repository

import (
	"smart-clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uint) (*entity.Patient, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Patient, error)
	FindByEmailOrPhone(db *gorm.DB, email, phone string) (*entity.Patient, error)
}
