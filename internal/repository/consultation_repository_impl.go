package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) domainRepo.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) FindAll(ctx context.Context) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByPatientID(ctx context.Context, patientID string) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date ASC, created_at ASC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	err := r.db.WithContext(ctx).Omit("Patient").Create(consultation).Error
	switch {
	case isDuplicateKeyError(err):
		return domainRepo.ErrDuplicateID
	case isForeignKeyError(err):
		return domainRepo.ErrUnknownPatient
	}
	return err
}
