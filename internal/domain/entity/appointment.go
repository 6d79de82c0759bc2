package entity

import (
	"time"
)

// Appointment status values. Completion is set when a prescription is
// recorded; there is no transition out of completed.
const (
	AppointmentStatusScheduled = 0
	AppointmentStatusCompleted = 1
)

// Appointment binds exactly one doctor and one patient to a start time.
// Every appointment occupies one 30-minute slot on the daily grid; the
// composite unique index on (doctor_id, appointment_time) is what stops two
// concurrent bookings from landing on the same slot.
type Appointment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        uint      `gorm:"not null;index;uniqueIndex:idx_appointments_doctor_time" json:"doctor_id"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	AppointmentTime time.Time `gorm:"not null;uniqueIndex:idx_appointments_doctor_time" json:"appointment_time"`
	Status          int       `gorm:"not null;default:0" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// EndTime is derived, never persisted. Appointments run one hour even though
// the booking grid advances in 30-minute steps.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentTime.Add(time.Hour)
}

// Date returns the calendar day of the appointment.
func (a *Appointment) Date() time.Time {
	y, m, d := a.AppointmentTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.AppointmentTime.Location())
}

// TimeOfDay returns the start time formatted like the slot grid ("09:30").
func (a *Appointment) TimeOfDay() string {
	return a.AppointmentTime.Format("15:04")
}

func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
