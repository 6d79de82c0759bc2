package handler

import (
	"encoding/json"
	"net/http"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/delivery/http/middleware"
	"smart-clinic-backend/internal/usecase"
	"smart-clinic-backend/pkg/response"
	"smart-clinic-backend/pkg/validator"
)

type PatientHandler struct {
	authUsecase    usecase.AuthUsecase
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(
	authUsecase usecase.AuthUsecase,
	patientUsecase usecase.PatientUsecase,
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		authUsecase:    authUsecase,
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokenResp, err := h.authUsecase.LoginPatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokenResp)
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientExists:
			response.Error(w, http.StatusConflict, "Patient with this email or phone already exists", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) Details(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	patient, err := h.patientUsecase.Details(r.Context(), tokenString)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		default:
			response.InternalServerError(w, "Failed to get patient details")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient details retrieved successfully", patient)
}

func (h *PatientHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	appointments, err := h.patientUsecase.Appointments(r.Context(), tokenString)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// FilterAppointments supports ?condition=past|future and ?doctorName=
// substring, combined or alone.
func (h *PatientHandler) FilterAppointments(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	query := r.URL.Query()
	condition := query.Get("condition")
	doctorName := query.Get("doctorName")

	appointments, err := h.patientUsecase.FilterAppointments(r.Context(), tokenString, condition, doctorName)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		case usecase.ErrInvalidCondition:
			response.Error(w, http.StatusBadRequest, "Condition must be 'past' or 'future'", nil)
		default:
			response.InternalServerError(w, "Failed to filter appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
