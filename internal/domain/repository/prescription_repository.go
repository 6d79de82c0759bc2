package repository

import (
	"context"

	"smart-clinic-backend/internal/domain/entity"
)

// PrescriptionRepository persists free-form prescription documents outside
// the relational store.
type PrescriptionRepository interface {
	// Save stores the prescription unless one already exists for the same
	// appointment. Returns false when the slot was already taken.
	Save(ctx context.Context, prescription *entity.Prescription) (bool, error)
	// FindByAppointmentID returns an empty slice when nothing is recorded.
	FindByAppointmentID(ctx context.Context, appointmentID uint) ([]entity.Prescription, error)
}
