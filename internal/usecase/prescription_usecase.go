package usecase

import (
	"context"
	"errors"
	"time"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
	"smart-clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionExists   = errors.New("prescription already exists for this appointment")
	ErrPrescriptionNotFound = errors.New("no prescription found for this appointment")
)

type PrescriptionUsecase interface {
	// Save records the prescription document. The appointment must exist and
	// must not already carry a prescription; the caller completes the
	// appointment afterwards via AppointmentUsecase.ChangeStatus.
	Save(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	Get(ctx context.Context, appointmentID uint) (*dto.PrescriptionListResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
	}
}

func (u *prescriptionUsecase) Save(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment for prescription: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	prescription := &entity.Prescription{
		ID:            uuid.NewString(),
		AppointmentID: req.AppointmentID,
		PatientName:   appointment.Patient.Name,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := u.prescriptionRepo.Save(ctx, prescription)
	if err != nil {
		u.log.Warnf("Failed to save prescription for appointment %d: %+v", req.AppointmentID, err)
		return nil, err
	}
	if !created {
		return nil, ErrPrescriptionExists
	}

	u.log.Infof("Prescription saved: id=%s, appointment=%d", prescription.ID, req.AppointmentID)
	return prescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, appointmentID uint) (*dto.PrescriptionListResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to load prescriptions for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if len(prescriptions) == 0 {
		return nil, ErrPrescriptionNotFound
	}

	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *prescriptionToResponse(&prescriptions[i])
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: responses,
		Total:         len(responses),
	}, nil
}

func prescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	return &dto.PrescriptionResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		PatientName:   p.PatientName,
		Medication:    p.Medication,
		Dosage:        p.Dosage,
		DoctorNotes:   p.DoctorNotes,
		CreatedAt:     p.CreatedAt,
	}
}
