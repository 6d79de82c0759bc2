package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart-clinic-backend/config"
	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"
	"smart-clinic-backend/pkg/token"
)

func newTestPatientUsecase(t *testing.T, patientRepo *fakePatientRepo, appointmentRepo *fakeAppointmentRepo) (PatientUsecase, *token.Service) {
	t.Helper()
	tokens := token.NewService(config.JWTConfig{Secret: "test-secret", Expiry: time.Hour})
	return NewPatientUsecase(testDB(t), testLogger(), patientRepo, appointmentRepo, tokens), tokens
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	patientRepo := &fakePatientRepo{
		patients: []entity.Patient{{ID: 1, Email: "ada@clinic.test", Phone: "555-0001"}},
	}
	u, _ := newTestPatientUsecase(t, patientRepo, &fakeAppointmentRepo{})

	req := &dto.RegisterPatientRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@clinic.test",
		Password: "difference-engine",
		Phone:    "555-0999",
	}
	if _, err := u.Register(context.Background(), req); !errors.Is(err, ErrPatientExists) {
		t.Fatalf("duplicate email: err = %v, want ErrPatientExists", err)
	}

	req.Email = "new@clinic.test"
	req.Phone = "555-0001"
	if _, err := u.Register(context.Background(), req); !errors.Is(err, ErrPatientExists) {
		t.Fatalf("duplicate phone: err = %v, want ErrPatientExists", err)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	patientRepo := &fakePatientRepo{}
	u, _ := newTestPatientUsecase(t, patientRepo, &fakeAppointmentRepo{})

	resp, err := u.Register(context.Background(), &dto.RegisterPatientRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@clinic.test",
		Password: "difference-engine",
		Phone:    "555-0001",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.ID == 0 {
		t.Fatal("patient id not assigned")
	}
	if stored := patientRepo.patients[0].Password; stored == "difference-engine" {
		t.Fatal("password stored in plain text")
	}
	if err := comparePassword(patientRepo.patients[0].Password, "difference-engine"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestDetailsInvalidToken(t *testing.T) {
	u, _ := newTestPatientUsecase(t, &fakePatientRepo{}, &fakeAppointmentRepo{})

	if _, err := u.Details(context.Background(), "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestDetailsUnknownSubject(t *testing.T) {
	u, tokens := newTestPatientUsecase(t, &fakePatientRepo{}, &fakeAppointmentRepo{})

	signed, err := tokens.Generate("ghost@clinic.test")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := u.Details(context.Background(), signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken for unknown subject", err)
	}
}

func TestFilterAppointmentsByCondition(t *testing.T) {
	patientRepo := &fakePatientRepo{patients: []entity.Patient{{ID: 9, Email: "ada@clinic.test"}}}
	now := time.Now().UTC()
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			{ID: 1, PatientID: 9, AppointmentTime: now.Add(-48 * time.Hour), Status: entity.AppointmentStatusCompleted},
			{ID: 2, PatientID: 9, AppointmentTime: now.Add(48 * time.Hour), Status: entity.AppointmentStatusScheduled},
		},
	}
	u, tokens := newTestPatientUsecase(t, patientRepo, appointmentRepo)
	signed, err := tokens.Generate("ada@clinic.test")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	past, err := u.FilterAppointments(context.Background(), signed, "past", "")
	if err != nil {
		t.Fatalf("filter past: %v", err)
	}
	if past.Total != 1 || past.Appointments[0].Status != entity.AppointmentStatusCompleted {
		t.Fatalf("past = %+v, want single completed appointment", past)
	}

	// Condition matching is case-insensitive.
	future, err := u.FilterAppointments(context.Background(), signed, "FUTURE", "")
	if err != nil {
		t.Fatalf("filter future: %v", err)
	}
	if future.Total != 1 || future.Appointments[0].Status != entity.AppointmentStatusScheduled {
		t.Fatalf("future = %+v, want single scheduled appointment", future)
	}

	if _, err := u.FilterAppointments(context.Background(), signed, "yesterday", ""); !errors.Is(err, ErrInvalidCondition) {
		t.Fatalf("err = %v, want ErrInvalidCondition", err)
	}
}

func TestFilterAppointmentsByDoctorName(t *testing.T) {
	patientRepo := &fakePatientRepo{patients: []entity.Patient{{ID: 9, Email: "ada@clinic.test"}}}
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			{ID: 1, PatientID: 9, Doctor: entity.Doctor{Name: "Gregory House"}},
			{ID: 2, PatientID: 9, Doctor: entity.Doctor{Name: "James Wilson"}},
		},
	}
	u, tokens := newTestPatientUsecase(t, patientRepo, appointmentRepo)
	signed, err := tokens.Generate("ada@clinic.test")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	resp, err := u.FilterAppointments(context.Background(), signed, "", "house")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if resp.Total != 1 || resp.Appointments[0].DoctorName != "Gregory House" {
		t.Fatalf("resp = %+v, want only Gregory House", resp)
	}
}
