package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
)

// DatasetSeeder writes an initial dataset into an empty store. Collections
// that already hold data are left untouched.
type DatasetSeeder interface {
	SeedIfEmpty(ctx context.Context, patients []entity.Patient, consultations []entity.Consultation) error
}
