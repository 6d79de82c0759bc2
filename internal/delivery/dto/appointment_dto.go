package dto

// CreateAppointmentRequest carries the requested slot as a raw string; the
// handler parses it as "2006-01-02T15:04:05" before the request reaches the
// booking flow. The patient is bound from the bearer token, never the body.
type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

type UpdateAppointmentRequest struct {
	ID              uint   `json:"id" validate:"required"`
	DoctorID        uint   `json:"doctor_id" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
}

type AppointmentResponse struct {
	ID              uint   `json:"id"`
	DoctorID        uint   `json:"doctor_id"`
	DoctorName      string `json:"doctor_name,omitempty"`
	PatientID       uint   `json:"patient_id"`
	PatientName     string `json:"patient_name,omitempty"`
	AppointmentDate string `json:"appointment_date"`
	TimeOfDay       string `json:"time_of_day"`
	EndTime         string `json:"end_time"`
	Status          int    `json:"status"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
