package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
)

type ConsultationRepository interface {
	// FindAll returns every consultation in stored order, across patients.
	FindAll(ctx context.Context) ([]entity.Consultation, error)
	// FindByPatientID returns the patient's consultations sorted by date ascending.
	FindByPatientID(ctx context.Context, patientID string) ([]entity.Consultation, error)
	Create(ctx context.Context, consultation *entity.Consultation) error
}
