package entity

import "time"

// Prescription is a free-form document stored in Redis, keyed by appointment
// id. The save path allows at most one prescription per appointment.
type Prescription struct {
	ID            string    `json:"id"`
	AppointmentID uint      `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes"`
	CreatedAt     time.Time `json:"created_at"`
}
