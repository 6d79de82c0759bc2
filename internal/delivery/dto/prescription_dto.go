package dto

import "time"

type CreatePrescriptionRequest struct {
	AppointmentID uint   `json:"appointment_id" validate:"required"`
	Medication    string `json:"medication" validate:"required,max=255"`
	Dosage        string `json:"dosage" validate:"required,max=100"`
	DoctorNotes   string `json:"doctor_notes" validate:"max=1000"`
}

type PrescriptionResponse struct {
	ID            string    `json:"id"`
	AppointmentID uint      `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Medication    string    `json:"medication"`
	Dosage        string    `json:"dosage"`
	DoctorNotes   string    `json:"doctor_notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
