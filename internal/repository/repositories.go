package repository

import (
	domainRepo "hepatotrack/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Repositories bundles one storage backend's implementations.
type Repositories struct {
	Patients      domainRepo.PatientRepository
	Consultations domainRepo.ConsultationRepository
	AuditLogs     domainRepo.AuditLogRepository
	Seeder        domainRepo.DatasetSeeder
}

func NewRedisRepositories(client *redis.Client) *Repositories {
	return &Repositories{
		Patients:      NewRedisPatientRepository(client),
		Consultations: NewRedisConsultationRepository(client),
		AuditLogs:     NewRedisAuditLogRepository(client),
		Seeder:        NewRedisSeeder(client),
	}
}

func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Patients:      NewPatientRepository(db),
		Consultations: NewConsultationRepository(db),
		AuditLogs:     NewAuditLogRepository(db),
		Seeder:        NewGormSeeder(db),
	}
}
