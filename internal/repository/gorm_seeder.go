package repository

import (
	"context"

	"hepatotrack/internal/domain/entity"
	domainRepo "hepatotrack/internal/domain/repository"

	"gorm.io/gorm"
)

type gormSeeder struct {
	db *gorm.DB
}

func NewGormSeeder(db *gorm.DB) domainRepo.DatasetSeeder {
	return &gormSeeder{db: db}
}

func (s *gormSeeder) SeedIfEmpty(ctx context.Context, patients []entity.Patient, consultations []entity.Consultation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Patient{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 && len(patients) > 0 {
			if err := tx.Create(&patients).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&entity.Consultation{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 && len(consultations) > 0 {
			if err := tx.Omit("Patient").Create(&consultations).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
