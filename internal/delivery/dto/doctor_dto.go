package dto

type CreateDoctorRequest struct {
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Specialty      string   `json:"specialty" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	Phone          string   `json:"phone" validate:"required,min=8,max=20"`
	AvailableTimes []string `json:"available_times"`
}

type UpdateDoctorRequest struct {
	ID             uint     `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"omitempty,min=3,max=100"`
	Specialty      string   `json:"specialty" validate:"omitempty,max=100"`
	Phone          string   `json:"phone" validate:"omitempty,min=8,max=20"`
	AvailableTimes []string `json:"available_times"`
}

type DoctorResponse struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"available_times"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// AvailabilityResponse lists the free 30-minute slots of one doctor on one
// day, formatted "HH:MM".
type AvailabilityResponse struct {
	DoctorID       uint     `json:"doctor_id"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"available_slots"`
}
