package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
)

type PatientRepository interface {
	// FindAll returns every patient in insertion order.
	FindAll(ctx context.Context) ([]entity.Patient, error)
	// FindByID returns nil, nil when no patient has the id.
	FindByID(ctx context.Context, id string) (*entity.Patient, error)
	Create(ctx context.Context, patient *entity.Patient) error
}
