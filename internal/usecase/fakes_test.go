package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"smart-clinic-backend/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// testDB returns a gorm handle backed by the dummy dialector. The fakes
// below ignore the handle entirely; it only has to survive WithContext.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("open dummy db: %v", err)
	}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeDoctorRepo struct {
	doctors   []entity.Doctor
	createErr error
	findErr   error
}

func (f *fakeDoctorRepo) Create(_ *gorm.DB, doctor *entity.Doctor) error {
	if f.createErr != nil {
		return f.createErr
	}
	doctor.ID = uint(len(f.doctors) + 1)
	f.doctors = append(f.doctors, *doctor)
	return nil
}

func (f *fakeDoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error {
	for i := range f.doctors {
		if f.doctors[i].ID == doctor.ID {
			f.doctors[i] = *doctor
			return nil
		}
	}
	return nil
}

func (f *fakeDoctorRepo) Delete(_ *gorm.DB, id uint) error {
	kept := f.doctors[:0]
	for _, d := range f.doctors {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.doctors = kept
	return nil
}

func (f *fakeDoctorRepo) FindByID(_ *gorm.DB, id uint) (*entity.Doctor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			doctor := f.doctors[i]
			return &doctor, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindByEmail(_ *gorm.DB, email string) (*entity.Doctor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.doctors {
		if f.doctors[i].Email == email {
			doctor := f.doctors[i]
			return &doctor, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll(_ *gorm.DB) ([]entity.Doctor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return append([]entity.Doctor(nil), f.doctors...), nil
}

func (f *fakeDoctorRepo) FindByName(_ *gorm.DB, name string) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range f.doctors {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) FindBySpecialty(_ *gorm.DB, specialty string) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range f.doctors {
		if d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDoctorRepo) FindByNameAndSpecialty(_ *gorm.DB, name, specialty string) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range f.doctors {
		if d.Specialty == specialty && strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments  []entity.Appointment
	createErr     error
	rangeErr      error
	deleted       []uint
	statusUpdates map[uint]int
}

func (f *fakeAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	appointment.ID = uint(len(f.appointments) + 1)
	f.appointments = append(f.appointments, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) Save(_ *gorm.DB, appointment *entity.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == appointment.ID {
			f.appointments[i] = *appointment
			return nil
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ *gorm.DB, id uint) error {
	f.deleted = append(f.deleted, id)
	kept := f.appointments[:0]
	for _, a := range f.appointments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.appointments = kept
	return nil
}

func (f *fakeAppointmentRepo) DeleteAllByDoctorID(_ *gorm.DB, doctorID uint) error {
	kept := f.appointments[:0]
	for _, a := range f.appointments {
		if a.DoctorID != doctorID {
			kept = append(kept, a)
		}
	}
	f.appointments = kept
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ *gorm.DB, id uint, status int) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[uint]int)
	}
	f.statusUpdates[id] = status
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ *gorm.DB, id uint) (*entity.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			appointment := f.appointments[i]
			return &appointment, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByDoctorAndTimeRange(_ *gorm.DB, doctorID uint, start, end time.Time) ([]entity.Appointment, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID && !a.AppointmentTime.Before(start) && !a.AppointmentTime.After(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(_ *gorm.DB, patientID uint) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByPatientIDAndStatus(_ *gorm.DB, patientID uint, status int) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByDoctorNameAndPatientID(_ *gorm.DB, doctorName string, patientID uint) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && strings.Contains(strings.ToLower(a.Doctor.Name), strings.ToLower(doctorName)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindByDoctorNameAndPatientIDAndStatus(_ *gorm.DB, doctorName string, patientID uint, status int) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && a.Status == status &&
			strings.Contains(strings.ToLower(a.Doctor.Name), strings.ToLower(doctorName)) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients  []entity.Patient
	createErr error
}

func (f *fakePatientRepo) Create(_ *gorm.DB, patient *entity.Patient) error {
	if f.createErr != nil {
		return f.createErr
	}
	patient.ID = uint(len(f.patients) + 1)
	f.patients = append(f.patients, *patient)
	return nil
}

func (f *fakePatientRepo) FindByID(_ *gorm.DB, id uint) (*entity.Patient, error) {
	for i := range f.patients {
		if f.patients[i].ID == id {
			patient := f.patients[i]
			return &patient, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByEmail(_ *gorm.DB, email string) (*entity.Patient, error) {
	for i := range f.patients {
		if f.patients[i].Email == email {
			patient := f.patients[i]
			return &patient, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByEmailOrPhone(_ *gorm.DB, email, phone string) (*entity.Patient, error) {
	for i := range f.patients {
		if f.patients[i].Email == email || f.patients[i].Phone == phone {
			patient := f.patients[i]
			return &patient, nil
		}
	}
	return nil, nil
}

type fakeAdminRepo struct {
	admins []entity.Admin
}

func (f *fakeAdminRepo) FindByUsername(_ *gorm.DB, username string) (*entity.Admin, error) {
	for i := range f.admins {
		if f.admins[i].Username == username {
			admin := f.admins[i]
			return &admin, nil
		}
	}
	return nil, nil
}

type fakePrescriptionRepo struct {
	stored  map[uint][]entity.Prescription
	saveErr error
	findErr error
}

func (f *fakePrescriptionRepo) Save(_ context.Context, prescription *entity.Prescription) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	if f.stored == nil {
		f.stored = make(map[uint][]entity.Prescription)
	}
	if len(f.stored[prescription.AppointmentID]) > 0 {
		return false, nil
	}
	f.stored[prescription.AppointmentID] = append(f.stored[prescription.AppointmentID], *prescription)
	return true, nil
}

func (f *fakePrescriptionRepo) FindByAppointmentID(_ context.Context, appointmentID uint) ([]entity.Prescription, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return append([]entity.Prescription(nil), f.stored[appointmentID]...), nil
}
