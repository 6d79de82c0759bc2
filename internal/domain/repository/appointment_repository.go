package repository

import (
	"time"

	"smart-clinic-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Save(db *gorm.DB, appointment *entity.Appointment) error
	Delete(db *gorm.DB, id uint) error
	DeleteAllByDoctorID(db *gorm.DB, doctorID uint) error
	UpdateStatus(db *gorm.DB, id uint, status int) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByDoctorAndTimeRange(db *gorm.DB, doctorID uint, start, end time.Time) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uint) ([]entity.Appointment, error)
	FindByPatientIDAndStatus(db *gorm.DB, patientID uint, status int) ([]entity.Appointment, error)
	FindByDoctorNameAndPatientID(db *gorm.DB, doctorName string, patientID uint) ([]entity.Appointment, error)
	FindByDoctorNameAndPatientIDAndStatus(db *gorm.DB, doctorName string, patientID uint, status int) ([]entity.Appointment, error)
}
