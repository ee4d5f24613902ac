package repository

import (
	"context"
	"slices"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisConsultationRepository struct {
	consultations *redisCollection[entity.Consultation]
}

func NewRedisConsultationRepository(client *redis.Client) domainRepo.ConsultationRepository {
	return &redisConsultationRepository{
		consultations: &redisCollection[entity.Consultation]{client: client, key: ConsultationsKey, id: idOfConsultation},
	}
}

func (r *redisConsultationRepository) FindAll(ctx context.Context) ([]entity.Consultation, error) {
	return r.consultations.readAll(ctx)
}

func (r *redisConsultationRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Consultation, error) {
	all, err := r.consultations.readAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []entity.Consultation
	for _, c := range all {
		if c.PatientID == patientID {
			matched = append(matched, c)
		}
	}
	slices.SortStableFunc(matched, func(a, b entity.Consultation) int {
		return a.Date.Compare(b.Date)
	})
	return matched, nil
}

func (r *redisConsultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	return r.consultations.append(ctx, *consultation)
}
