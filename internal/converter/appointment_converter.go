package converter

import (
	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
)

// AppointmentToResponse flattens an appointment and its preloaded doctor and
// patient into the wire shape. Names are left empty when the associations
// were not loaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.Doctor.Name,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.Patient.Name,
		AppointmentDate: appointment.Date().Format("2006-01-02"),
		TimeOfDay:       appointment.TimeOfDay(),
		EndTime:         appointment.EndTime().Format("15:04"),
		Status:          appointment.Status,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
