package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart-clinic-backend/internal/delivery/dto"
	"smart-clinic-backend/internal/domain/entity"

	"gorm.io/datatypes"
)

func newTestDoctorUsecase(t *testing.T, doctorRepo *fakeDoctorRepo, appointmentRepo *fakeAppointmentRepo) DoctorUsecase {
	t.Helper()
	return NewDoctorUsecase(testDB(t), testLogger(), doctorRepo, appointmentRepo)
}

func TestDailySlots(t *testing.T) {
	u := newTestDoctorUsecase(t, &fakeDoctorRepo{}, &fakeAppointmentRepo{})

	slots := u.DailySlots()
	if len(slots) != 16 {
		t.Fatalf("len(slots) = %d, want 16", len(slots))
	}
	if slots[0] != "09:00" {
		t.Fatalf("first slot = %q, want 09:00", slots[0])
	}
	if slots[len(slots)-1] != "16:30" {
		t.Fatalf("last slot = %q, want 16:30", slots[len(slots)-1])
	}
	if slots[1] != "09:30" {
		t.Fatalf("second slot = %q, want 09:30", slots[1])
	}
}

func TestGetAvailabilitySubtractsBookedSlots(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			{ID: 1, DoctorID: 7, AppointmentTime: day.Add(9 * time.Hour)},                    // 09:00
			{ID: 2, DoctorID: 7, AppointmentTime: day.Add(14*time.Hour + 30*time.Minute)},   // 14:30
			{ID: 3, DoctorID: 99, AppointmentTime: day.Add(10 * time.Hour)},                 // other doctor
			{ID: 4, DoctorID: 7, AppointmentTime: day.Add(-24*time.Hour + 11*time.Hour)},    // other day
		},
	}
	u := newTestDoctorUsecase(t, &fakeDoctorRepo{}, appointmentRepo)

	slots := u.GetAvailability(context.Background(), 7, day)
	if len(slots) != 14 {
		t.Fatalf("len(slots) = %d, want 14", len(slots))
	}
	for _, slot := range slots {
		if slot == "09:00" || slot == "14:30" {
			t.Fatalf("booked slot %q still offered", slot)
		}
	}
}

func TestGetAvailabilityOffGridBookingSubtractsNothing(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	appointmentRepo := &fakeAppointmentRepo{
		appointments: []entity.Appointment{
			// 09:10 is not on the 30-minute grid, so no slot matches it.
			{ID: 1, DoctorID: 7, AppointmentTime: day.Add(9*time.Hour + 10*time.Minute)},
		},
	}
	u := newTestDoctorUsecase(t, &fakeDoctorRepo{}, appointmentRepo)

	slots := u.GetAvailability(context.Background(), 7, day)
	if len(slots) != 16 {
		t.Fatalf("len(slots) = %d, want full grid of 16", len(slots))
	}
}

func TestGetAvailabilityStorageFaultReturnsEmpty(t *testing.T) {
	appointmentRepo := &fakeAppointmentRepo{rangeErr: errors.New("connection reset")}
	u := newTestDoctorUsecase(t, &fakeDoctorRepo{}, appointmentRepo)

	slots := u.GetAvailability(context.Background(), 7, time.Now())
	if slots == nil {
		t.Fatal("slots = nil, want empty slice")
	}
	if len(slots) != 0 {
		t.Fatalf("len(slots) = %d, want 0 on storage fault", len(slots))
	}
}

func TestSaveRejectsDuplicateEmail(t *testing.T) {
	doctorRepo := &fakeDoctorRepo{
		doctors: []entity.Doctor{{ID: 1, Email: "house@clinic.test"}},
	}
	u := newTestDoctorUsecase(t, doctorRepo, &fakeAppointmentRepo{})

	_, err := u.Save(context.Background(), &dto.CreateDoctorRequest{
		Name:      "Gregory House",
		Specialty: "Diagnostics",
		Email:     "house@clinic.test",
		Password:  "lupus-is-never-it",
		Phone:     "555-0100",
	})
	if !errors.Is(err, ErrDoctorExists) {
		t.Fatalf("err = %v, want ErrDoctorExists", err)
	}
}

func TestUpdateUnknownDoctor(t *testing.T) {
	u := newTestDoctorUsecase(t, &fakeDoctorRepo{}, &fakeAppointmentRepo{})

	_, err := u.Update(context.Background(), &dto.UpdateDoctorRequest{ID: 42, Name: "Nobody"})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("err = %v, want ErrDoctorNotFound", err)
	}
}

func TestFilterByTimeOfDay(t *testing.T) {
	doctors := []entity.Doctor{
		{ID: 1, Name: "Morning", AvailableTimes: datatypes.JSON(`["09:00-12:00"]`)},
		{ID: 2, Name: "Afternoon", AvailableTimes: datatypes.JSON(`["13:00-17:00"]`)},
		{ID: 3, Name: "Broken", AvailableTimes: datatypes.JSON(`["soon"]`)},
		{ID: 4, Name: "Unset"},
	}

	am := filterDoctorsByTimeOfDay(doctors, "AM")
	if len(am) != 1 || am[0].Name != "Morning" {
		t.Fatalf("AM filter = %+v, want only Morning", am)
	}

	pm := filterDoctorsByTimeOfDay(doctors, "pm")
	if len(pm) != 1 || pm[0].Name != "Afternoon" {
		t.Fatalf("PM filter = %+v, want only Afternoon", pm)
	}

	// An unrecognized value filters nothing out.
	all := filterDoctorsByTimeOfDay(doctors, "noonish")
	if len(all) != len(doctors) {
		t.Fatalf("unknown filter dropped doctors: %d of %d left", len(all), len(doctors))
	}
}
