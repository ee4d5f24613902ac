package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisPatientRepository struct {
	patients *redisCollection[entity.Patient]
}

func NewRedisPatientRepository(client *redis.Client) domainRepo.PatientRepository {
	return &redisPatientRepository{
		patients: &redisCollection[entity.Patient]{client: client, key: PatientsKey, id: idOfPatient},
	}
}

func (r *redisPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	return r.patients.readAll(ctx)
}

func (r *redisPatientRepository) FindByID(ctx context.Context, id string) (*entity.Patient, error) {
	patients, err := r.patients.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i], nil
		}
	}
	return nil, nil
}

func (r *redisPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.patients.append(ctx, *patient)
}
