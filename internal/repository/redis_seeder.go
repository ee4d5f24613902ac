package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisSeeder struct {
	patients      *redisCollection[entity.Patient]
	consultations *redisCollection[entity.Consultation]
}

func NewRedisSeeder(client *redis.Client) domainRepo.DatasetSeeder {
	return &redisSeeder{
		patients:      &redisCollection[entity.Patient]{client: client, key: PatientsKey},
		consultations: &redisCollection[entity.Consultation]{client: client, key: ConsultationsKey},
	}
}

// SeedIfEmpty initializes each collection key independently with SETNX.
func (s *redisSeeder) SeedIfEmpty(ctx context.Context, patients []entity.Patient, consultations []entity.Consultation) error {
	if _, err := s.patients.initialize(ctx, patients); err != nil {
		return err
	}
	_, err := s.consultations.initialize(ctx, consultations)
	return err
}
