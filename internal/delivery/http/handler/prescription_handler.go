package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
	"smart-clinic-backend/internal/usecase"
	"smart-clinic-backend/pkg/response"
	"smart-clinic-backend/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	appointmentUsecase  usecase.AppointmentUsecase
	validator           *validator.CustomValidator
	log                 *logrus.Logger
}

func NewPrescriptionHandler(
	prescriptionUsecase usecase.PrescriptionUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		appointmentUsecase:  appointmentUsecase,
		validator:           validator,
		log:                 log,
	}
}

// Save records the prescription and then marks the appointment completed.
// The two writes live in different stores, so the status flip is best-effort:
// a failure there is logged but does not undo the saved prescription.
func (h *PrescriptionHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Save(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrPrescriptionExists:
			response.Error(w, http.StatusConflict, "Prescription already exists for this appointment", nil)
		default:
			response.InternalServerError(w, "Failed to save prescription")
		}
		return
	}

	if err := h.appointmentUsecase.ChangeStatus(r.Context(), req.AppointmentID, entity.AppointmentStatusCompleted); err != nil {
		h.log.Warnf("Failed to complete appointment %d after prescription: %+v", req.AppointmentID, err)
	}

	response.Success(w, http.StatusCreated, "Prescription saved successfully", prescription)
}

func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseUint(vars["appointmentId"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	prescriptions, err := h.prescriptionUsecase.Get(r.Context(), uint(appointmentID))
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "No prescription found for this appointment")
		default:
			response.InternalServerError(w, "Failed to get prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", prescriptions)
}
