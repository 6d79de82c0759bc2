package repository

import (
	"errors"
	"time"

	"smart-clinic-backend/internal/domain/entity"
	domainRepo "smart-clinic-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.Appointment{}, id).Error
}

func (r *appointmentRepository) DeleteAllByDoctorID(db *gorm.DB, doctorID uint) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uint, status int) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndTimeRange(db *gorm.DB, doctorID uint, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("doctor_id = ? AND appointment_time BETWEEN ? AND ?", doctorID, start, end).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientIDAndStatus(db *gorm.DB, patientID uint, status int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Where("patient_id = ? AND status = ?", patientID, status).
		Order("appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorNameAndPatientID(db *gorm.DB, doctorName string, patientID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("doctors.name ILIKE ? AND appointments.patient_id = ?", "%"+doctorName+"%", patientID).
		Order("appointments.appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorNameAndPatientIDAndStatus(db *gorm.DB, doctorName string, patientID uint, status int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Patient").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("doctors.name ILIKE ? AND appointments.patient_id = ? AND appointments.status = ?", "%"+doctorName+"%", patientID, status).
		Order("appointments.appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
