package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"smart-clinic-backend/internal/domain/entity"
	domainRepo "smart-clinic-backend/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// prescriptionRepository keeps prescriptions as JSON documents in Redis,
// one document per appointment. SETNX makes the at-most-one rule atomic.
type prescriptionRepository struct {
	client *redis.Client
}

func NewPrescriptionRepository(client *redis.Client) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{client: client}
}

func prescriptionKey(appointmentID uint) string {
	return fmt.Sprintf("prescription:appointment:%d", appointmentID)
}

func (r *prescriptionRepository) Save(ctx context.Context, prescription *entity.Prescription) (bool, error) {
	payload, err := json.Marshal(prescription)
	if err != nil {
		return false, err
	}

	created, err := r.client.SetNX(ctx, prescriptionKey(prescription.AppointmentID), payload, 0).Result()
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *prescriptionRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) ([]entity.Prescription, error) {
	payload, err := r.client.Get(ctx, prescriptionKey(appointmentID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []entity.Prescription{}, nil
		}
		return nil, err
	}

	var prescription entity.Prescription
	if err := json.Unmarshal(payload, &prescription); err != nil {
		return nil, err
	}
	return []entity.Prescription{prescription}, nil
}
