package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrDoctorExists   = errors.New("doctor already exists")
)

// Working window of the slot grid: 09:00 up to (not including) 17:00 in
// 30-minute steps, 16 slots per day.
const (
	workdayStartHour = 9
	workdayEndHour   = 17
	slotMinutes      = 30
)

type DoctorUsecase interface {
	// DailySlots returns the fixed slot grid, identical every call.
	DailySlots() []string

	// GetAvailability subtracts booked slots from the daily grid for one
	// doctor and day. Storage faults collapse to an empty slice.
	GetAvailability(ctx context.Context, doctorID uint, date time.Time) []string

	Save(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) (*dto.DoctorListResponse, error)
	Filter(ctx context.Context, name, specialty, amOrPm string) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorUsecase) DailySlots() []string {
	slots := make([]string, 0, (workdayEndHour-workdayStartHour)*60/slotMinutes)
	for hour := workdayStartHour; hour < workdayEndHour; hour++ {
		for minute := 0; minute < 60; minute += slotMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uint, date time.Time) []string {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)

	appointments, err := u.appointmentRepo.FindByDoctorAndTimeRange(u.db.WithContext(ctx), doctorID, start, end)
	if err != nil {
		u.log.Warnf("Failed to load appointments for availability of doctor %d: %+v", doctorID, err)
		return []string{}
	}

	// Booked slots match by exact "HH:MM" equality; an appointment off the
	// 30-minute grid subtracts nothing.
	booked := make(map[string]struct{}, len(appointments))
	for i := range appointments {
		booked[appointments[i].TimeOfDay()] = struct{}{}
	}

	available := make([]string, 0, 16)
	for _, slot := range u.DailySlots() {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

func (u *doctorUsecase) Save(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	existing, err := u.doctorRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check doctor email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorExists
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	availableTimes, err := json.Marshal(req.AvailableTimes)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Password:       hashedPassword,
		Phone:          req.Phone,
		AvailableTimes: availableTimes,
	}

	if err := u.doctorRepo.Create(u.db.WithContext(ctx), doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrDoctorExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), req.ID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.AvailableTimes != nil {
		availableTimes, err := json.Marshal(req.AvailableTimes)
		if err != nil {
			return nil, err
		}
		doctor.AvailableTimes = availableTimes
	}

	if err := u.doctorRepo.Update(u.db.WithContext(ctx), doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// Delete removes the doctor and every appointment bound to them in a single
// transaction.
func (u *doctorUsecase) Delete(ctx context.Context, id uint) error {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.DeleteAllByDoctorID(tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor appointments: %+v", err)
		return err
	}
	if err := u.doctorRepo.Delete(tx, id); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *doctorUsecase) List(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// Filter narrows the doctor list by any combination of partial name,
// specialty and AM/PM availability. Name and specialty go to storage; the
// AM/PM pass runs in memory over the free-text working-hour ranges.
func (u *doctorUsecase) Filter(ctx context.Context, name, specialty, amOrPm string) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)

	var (
		doctors []entity.Doctor
		err     error
	)
	switch {
	case name != "" && specialty != "":
		doctors, err = u.doctorRepo.FindByNameAndSpecialty(db, name, specialty)
	case name != "":
		doctors, err = u.doctorRepo.FindByName(db, name)
	case specialty != "":
		doctors, err = u.doctorRepo.FindBySpecialty(db, specialty)
	default:
		doctors, err = u.doctorRepo.FindAll(db)
	}
	if err != nil {
		u.log.Warnf("Failed to filter doctors: %+v", err)
		return nil, err
	}

	if amOrPm != "" {
		doctors = filterDoctorsByTimeOfDay(doctors, amOrPm)
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// filterDoctorsByTimeOfDay keeps doctors whose working-hour ranges start in
// the requested half of the day. A range counts as AM when its start time is
// before noon. Unparseable ranges are skipped.
func filterDoctorsByTimeOfDay(doctors []entity.Doctor, amOrPm string) []entity.Doctor {
	target := strings.ToUpper(amOrPm)
	if target != "AM" && target != "PM" {
		return doctors
	}

	noon, _ := time.Parse("15:04", "12:00")

	filtered := make([]entity.Doctor, 0, len(doctors))
	for i := range doctors {
		ranges := doctors[i].AvailableTimeRanges()
		if len(ranges) == 0 {
			continue
		}

		for _, slot := range ranges {
			start := slot
			if idx := strings.Index(slot, "-"); idx >= 0 {
				start = slot[:idx]
			}
			parsed, err := time.Parse("15:04", strings.TrimSpace(start))
			if err != nil {
				continue
			}
			matches := (target == "AM" && parsed.Before(noon)) ||
				(target == "PM" && !parsed.Before(noon))
			if matches {
				filtered = append(filtered, doctors[i])
				break
			}
		}
	}
	return filtered
}
