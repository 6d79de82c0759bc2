package repository

import (
	"smart-clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	Update(db *gorm.DB, doctor *entity.Doctor) error
	Delete(db *gorm.DB, id uint) error
	FindByID(db *gorm.DB, id uint) (*entity.Doctor, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Doctor, error)
	FindAll(db *gorm.DB) ([]entity.Doctor, error)
	FindByName(db *gorm.DB, name string) ([]entity.Doctor, error)
	FindBySpecialty(db *gorm.DB, specialty string) ([]entity.Doctor, error)
	FindByNameAndSpecialty(db *gorm.DB, name, specialty string) ([]entity.Doctor, error)
}
