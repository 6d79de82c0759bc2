package converter

import (
	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
)

func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:      patient.ID,
		Name:    patient.Name,
		Email:   patient.Email,
		Phone:   patient.Phone,
		Address: patient.Address,
	}
}
