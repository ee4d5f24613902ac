package usecase

import (
	"bytes"
	"context"
	"time"

	"hepatotrack/internal/delivery/dto"
	"hepatotrack/internal/domain/entity"
	"hepatotrack/internal/domain/repository"
	"hepatotrack/internal/service"

	"github.com/sirupsen/logrus"
)

const csvContentType = "text/csv; charset=utf-8"

type ResearchUsecase interface {
	GetStats(ctx context.Context) (*dto.ResearchStatsResponse, error)
	ExportCSV(ctx context.Context) (*dto.ExportFile, error)
}

type researchUsecase struct {
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	exporter         *service.CSVExporter
	now              func() time.Time
}

func NewResearchUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
	exporter *service.CSVExporter,
) ResearchUsecase {
	return &researchUsecase{
		log:              log,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		exporter:         exporter,
		now:              time.Now,
	}
}

// GetStats counts patients and the consultations that belong to them.
func (u *researchUsecase) GetStats(ctx context.Context) (*dto.ResearchStatsResponse, error) {
	patients, consultations, err := u.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(patients))
	for _, p := range patients {
		known[p.ID] = struct{}{}
	}
	var total int64
	for _, c := range consultations {
		if _, ok := known[c.PatientID]; ok {
			total++
		}
	}

	return &dto.ResearchStatsResponse{
		TotalPatients:      len(patients),
		TotalConsultations: total,
	}, nil
}

func (u *researchUsecase) ExportCSV(ctx context.Context) (*dto.ExportFile, error) {
	patients, consultations, err := u.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := u.exporter.Write(&buf, patients, consultations); err != nil {
		u.log.Errorf("Failed to write export: %+v", err)
		return nil, err
	}

	file := &dto.ExportFile{
		Filename:    service.ExportFilename(u.now()),
		ContentType: csvContentType,
		Content:     buf.Bytes(),
	}

	if err := u.auditService.LogEvent(ctx, entity.AuditActionExportCSV, entity.JSON{
		"filename":      file.Filename,
		"patients":      len(patients),
		"consultations": len(consultations),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return file, nil
}

func (u *researchUsecase) loadAll(ctx context.Context) ([]entity.Patient, []entity.Consultation, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, nil, err
	}

	consultations, err := u.consultationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, nil, err
	}

	return patients, consultations, nil
}
