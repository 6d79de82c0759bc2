package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"smart-clinic-backend/internal/converter"
	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
	"smart-clinic-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotUnavailable     = errors.New("selected time is not available")
	ErrPastAppointment     = errors.New("appointment time must be in the future")
	ErrNotOwner            = errors.New("appointment belongs to another patient")
)

type AppointmentUsecase interface {
	// Validate checks the doctor exists and the requested slot is still free.
	// It is a separate call from Book so the HTTP layer can map doctor-not-
	// found, slot-taken and created to distinct status codes.
	Validate(ctx context.Context, doctorID uint, appointmentTime time.Time) error

	// Book persists a pre-validated appointment for the patient bound to the
	// token. A unique-index violation on (doctor_id, appointment_time) is
	// reported as ErrSlotUnavailable; that is what closes the window between
	// two concurrent Validate calls for the same slot.
	Book(ctx context.Context, tokenString string, doctorID uint, appointmentTime time.Time) (*dto.AppointmentResponse, error)

	Update(ctx context.Context, id, doctorID uint, appointmentTime time.Time) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uint, tokenString string) error
	ChangeStatus(ctx context.Context, id uint, status int) error
	ListForDoctor(ctx context.Context, tokenString, patientName string, date time.Time) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auth            AuthUsecase
	doctors         DoctorUsecase
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auth AuthUsecase,
	doctors DoctorUsecase,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auth:            auth,
		doctors:         doctors,
	}
}

func (u *appointmentUsecase) Validate(ctx context.Context, doctorID uint, appointmentTime time.Time) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor during validation: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if !appointmentTime.After(time.Now()) {
		return ErrPastAppointment
	}

	available := u.doctors.GetAvailability(ctx, doctorID, appointmentTime)
	requested := appointmentTime.Format("15:04")
	for _, slot := range available {
		if slot == requested {
			return nil
		}
	}
	return ErrSlotUnavailable
}

func (u *appointmentUsecase) Book(ctx context.Context, tokenString string, doctorID uint, appointmentTime time.Time) (*dto.AppointmentResponse, error) {
	patientID, ok := u.auth.PatientIDFromToken(ctx, tokenString)
	if !ok {
		return nil, ErrInvalidToken
	}

	appointment := &entity.Appointment{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentTime: appointmentTime,
		Status:          entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_time") {
			return nil, ErrSlotUnavailable
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, patient=%d, time=%s",
		appointment.ID, doctorID, patientID, appointmentTime.Format(time.RFC3339))
	return converter.AppointmentToResponse(full), nil
}

// Update moves an existing appointment to a new doctor/time. The requested
// slot is re-validated against the unmodified grid; the appointment's own
// current slot is not excluded, so re-submitting an unchanged time reports
// the slot as taken.
func (u *appointmentUsecase) Update(ctx context.Context, id, doctorID uint, appointmentTime time.Time) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := u.Validate(ctx, doctorID, appointmentTime); err != nil {
		return nil, err
	}

	appointment.DoctorID = doctorID
	appointment.AppointmentTime = appointmentTime

	if err := u.appointmentRepo.Save(u.db.WithContext(ctx), appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_time") {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment updated: id=%d, doctor=%d, time=%s",
		id, doctorID, appointmentTime.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel hard-deletes the appointment after checking that the token resolves
// to the owning patient.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uint, tokenString string) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	patientID, ok := u.auth.PatientIDFromToken(ctx, tokenString)
	if !ok {
		return ErrInvalidToken
	}
	if appointment.PatientID != patientID {
		return ErrNotOwner
	}

	if err := u.appointmentRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", id, err)
		return err
	}

	u.log.Infof("Appointment cancelled: id=%d, patient=%d", id, patientID)
	return nil
}

// ChangeStatus overwrites the status without checking transition legality;
// callers invoke it with the completed value once a prescription is recorded.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id uint, status int) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.UpdateStatus(u.db.WithContext(ctx), id, status); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return err
	}
	return nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context, tokenString, patientName string, date time.Time) (*dto.AppointmentListResponse, error) {
	doctorID, ok := u.auth.DoctorIDFromToken(ctx, tokenString)
	if !ok {
		return nil, ErrInvalidToken
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)

	appointments, err := u.appointmentRepo.FindByDoctorAndTimeRange(u.db.WithContext(ctx), doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	// Patient-name filtering happens here, after the fetch, not in storage.
	if patientName != "" {
		needle := strings.ToLower(patientName)
		filtered := appointments[:0]
		for i := range appointments {
			if strings.Contains(strings.ToLower(appointments[i].Patient.Name), needle) {
				filtered = append(filtered, appointments[i])
			}
		}
		appointments = filtered
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}
