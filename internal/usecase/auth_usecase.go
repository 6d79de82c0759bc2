package usecase

import (
	"context"
	"errors"
	"strings"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/repository"
	"smart-clinic-backend/pkg/token"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Actor roles. Tokens carry no role claim; the role is resolved per request
// by probing the matching credential table.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

var (
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthUsecase interface {
	LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)

	// ValidateToken reports whether the token's subject exists in the
	// credential table for the claimed role. It never returns an error:
	// verification failures and storage faults both degrade to false.
	ValidateToken(ctx context.Context, tokenString, role string) bool

	// DoctorIDFromToken and PatientIDFromToken bind a request to the
	// caller's own record for ownership checks, distinct from role gating.
	DoctorIDFromToken(ctx context.Context, tokenString string) (uint, bool)
	PatientIDFromToken(ctx context.Context, tokenString string) (uint, bool)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	adminRepo    repository.AdminRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	tokenService *token.Service
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	tokenService *token.Service,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		adminRepo:    adminRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		tokenService: tokenService,
	}
}

func (u *authUsecase) LoginAdmin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find admin by username: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := comparePassword(admin.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(admin.Username)
}

func (u *authUsecase) LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrInvalidCredentials
	}

	if err := comparePassword(doctor.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(doctor.Email)
}

func (u *authUsecase) LoginPatient(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if err := comparePassword(patient.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(patient.Email)
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString, role string) bool {
	identifier, err := u.tokenService.ExtractIdentifier(tokenString)
	if err != nil {
		u.log.Warnf("Token validation failed: %v", err)
		return false
	}

	// Ordered partition probe: admin by username, doctor/patient by email.
	// Roles are assumed non-overlapping; first match wins.
	switch strings.ToLower(role) {
	case RoleAdmin:
		admin, err := u.adminRepo.FindByUsername(u.db.WithContext(ctx), identifier)
		if err != nil {
			u.log.Warnf("Admin lookup failed during token validation: %+v", err)
			return false
		}
		return admin != nil
	case RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), identifier)
		if err != nil {
			u.log.Warnf("Doctor lookup failed during token validation: %+v", err)
			return false
		}
		return doctor != nil
	case RolePatient:
		patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), identifier)
		if err != nil {
			u.log.Warnf("Patient lookup failed during token validation: %+v", err)
			return false
		}
		return patient != nil
	default:
		return false
	}
}

func (u *authUsecase) DoctorIDFromToken(ctx context.Context, tokenString string) (uint, bool) {
	identifier, err := u.tokenService.ExtractIdentifier(tokenString)
	if err != nil {
		return 0, false
	}

	doctor, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), identifier)
	if err != nil {
		u.log.Warnf("Failed to resolve doctor id from token: %+v", err)
		return 0, false
	}
	if doctor == nil {
		return 0, false
	}
	return doctor.ID, true
}

func (u *authUsecase) PatientIDFromToken(ctx context.Context, tokenString string) (uint, bool) {
	identifier, err := u.tokenService.ExtractIdentifier(tokenString)
	if err != nil {
		return 0, false
	}

	patient, err := u.patientRepo.FindByEmail(u.db.WithContext(ctx), identifier)
	if err != nil {
		u.log.Warnf("Failed to resolve patient id from token: %+v", err)
		return 0, false
	}
	if patient == nil {
		return 0, false
	}
	return patient.ID, true
}

func (u *authUsecase) issueToken(identifier string) (*dto.TokenResponse, error) {
	signed, err := u.tokenService.Generate(identifier)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(u.tokenService.Expiry().Seconds()),
	}, nil
}
