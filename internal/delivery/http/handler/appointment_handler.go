package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/delivery/http/middleware"
	"smart-clinic-backend/internal/usecase"
	"smart-clinic-backend/pkg/response"
	"smart-clinic-backend/pkg/validator"

	"github.com/gorilla/mux"
)

// appointmentTimeLayout is the wire format for requested slots.
const appointmentTimeLayout = "2006-01-02T15:04:05"

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointmentTime, err := time.Parse(appointmentTimeLayout, req.AppointmentTime)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment time, use YYYY-MM-DDTHH:MM:SS", nil)
		return
	}

	if err := h.appointmentUsecase.Validate(r.Context(), req.DoctorID, appointmentTime); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPastAppointment:
			response.Error(w, http.StatusBadRequest, "Appointment time must be in the future", nil)
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusBadRequest, "Selected time is not available", nil)
		default:
			response.InternalServerError(w, "Failed to validate appointment")
		}
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), tokenString, req.DoctorID, appointmentTime)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusBadRequest, "Selected time is not available", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointmentTime, err := time.Parse(appointmentTimeLayout, req.AppointmentTime)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment time, use YYYY-MM-DDTHH:MM:SS", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), req.ID, req.DoctorID, appointmentTime)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPastAppointment:
			response.Error(w, http.StatusBadRequest, "Appointment time must be in the future", nil)
		case usecase.ErrSlotUnavailable:
			response.Error(w, http.StatusBadRequest, "Selected time is not available", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), uint(id), tokenString); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		case usecase.ErrNotOwner:
			response.Forbidden(w, "Appointment belongs to another patient")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// ListForDoctor serves the doctor's day view. The date defaults to today in
// UTC; ?patientName= narrows by case-insensitive substring.
func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing token")
		return
	}

	query := r.URL.Query()
	patientName := query.Get("patientName")

	date := time.Now().UTC()
	if raw := query.Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context(), tokenString, patientName, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken:
			response.Unauthorized(w, "Invalid or expired token")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
