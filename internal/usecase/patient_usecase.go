package usecase

import (
	"context"
	"errors"
	"strings"

	"smart-clinic-backend/internal/converter"
	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
	"smart-clinic-backend/internal/domain/repository"
	"smart-clinic-backend/pkg/token"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrPatientExists    = errors.New("patient with email or phone already exists")
	ErrInvalidCondition = errors.New("invalid condition, use 'past' or 'future'")
)

type PatientUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	Details(ctx context.Context, tokenString string) (*dto.PatientResponse, error)
	Appointments(ctx context.Context, tokenString string) (*dto.AppointmentListResponse, error)

	// FilterAppointments narrows the caller's appointments by condition
	// ("past" = completed, "future" = scheduled) and/or doctor-name
	// substring. Empty filters fall back to the full list.
	FilterAppointments(ctx context.Context, tokenString, condition, doctorName string) (*dto.AppointmentListResponse, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	tokenService    *token.Service
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	tokenService *token.Service,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		tokenService:    tokenService,
	}
}

func (u *patientUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	existing, err := u.patientRepo.FindByEmailOrPhone(u.db.WithContext(ctx), req.Email, req.Phone)
	if err != nil {
		u.log.Warnf("Failed to check patient uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrPatientExists
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	if err := u.patientRepo.Create(u.db.WithContext(ctx), patient); err != nil {
		if isDuplicateKeyError(err, "email") || isDuplicateKeyError(err, "phone") {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Details(ctx context.Context, tokenString string) (*dto.PatientResponse, error) {
	patient, err := u.patientFromToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Appointments(ctx context.Context, tokenString string) (*dto.AppointmentListResponse, error) {
	patient, err := u.patientFromToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *patientUsecase) FilterAppointments(ctx context.Context, tokenString, condition, doctorName string) (*dto.AppointmentListResponse, error) {
	patient, err := u.patientFromToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	status := -1
	if condition != "" {
		status, err = conditionToStatus(condition)
		if err != nil {
			return nil, err
		}
	}

	db := u.db.WithContext(ctx)

	var appointments []entity.Appointment
	switch {
	case condition != "" && doctorName != "":
		appointments, err = u.appointmentRepo.FindByDoctorNameAndPatientIDAndStatus(db, doctorName, patient.ID, status)
	case condition != "":
		appointments, err = u.appointmentRepo.FindByPatientIDAndStatus(db, patient.ID, status)
	case doctorName != "":
		appointments, err = u.appointmentRepo.FindByDoctorNameAndPatientID(db, doctorName, patient.ID)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, patient.ID)
	}
	if err != nil {
		u.log.Warnf("Failed to filter appointments for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *patientUsecase) patientFromToken(ctx context.Context, tokenString string) (*entity.Patient, error) {
	email, err := u.tokenService.ExtractIdentifier(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidToken
	}
	return patient, nil
}

// "past" means completed visits, "future" means still scheduled ones.
func conditionToStatus(condition string) (int, error) {
	switch strings.ToLower(condition) {
	case "past":
		return entity.AppointmentStatusCompleted, nil
	case "future":
		return entity.AppointmentStatusScheduled, nil
	default:
		return 0, ErrInvalidCondition
	}
}
