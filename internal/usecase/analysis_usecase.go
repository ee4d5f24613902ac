package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hepatotrack/internal/delivery/dto"
	"hepatotrack/internal/domain/entity"
	"hepatotrack/internal/domain/repository"
	"hepatotrack/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	minAnalysisConsultations = 2
	emptyAnalysisText        = "No se pudo generar el análisis."
)

var (
	ErrInsufficientConsultations = errors.New("at least 2 consultations are required")
	ErrAnalysisUnavailable       = errors.New("analysis service is not configured")
	ErrAnalysisInProgress        = errors.New("an analysis for this patient is already running")
	ErrAnalysisFailed            = errors.New("analysis service request failed")
)

type AnalysisUsecase interface {
	AnalyzeEvolution(ctx context.Context, patientID string) (*dto.AnalysisResponse, error)
}

type analysisUsecase struct {
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	generator        service.NarrativeGenerator
	guard            *service.InflightGuard
	timeout          time.Duration
	now              func() time.Time
}

// NewAnalysisUsecase wires the AI summary. generator may be nil, in which
// case every request fails with ErrAnalysisUnavailable.
func NewAnalysisUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
	generator service.NarrativeGenerator,
	guard *service.InflightGuard,
	timeout time.Duration,
) AnalysisUsecase {
	return &analysisUsecase{
		log:              log,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		generator:        generator,
		guard:            guard,
		timeout:          timeout,
		now:              time.Now,
	}
}

func (u *analysisUsecase) AnalyzeEvolution(ctx context.Context, patientID string) (*dto.AnalysisResponse, error) {
	patient, err := findPatient(ctx, u.log, u.patientRepo, patientID)
	if err != nil {
		return nil, err
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}
	if len(consultations) < minAnalysisConsultations {
		return nil, ErrInsufficientConsultations
	}

	if u.generator == nil {
		return nil, ErrAnalysisUnavailable
	}

	release, ok := u.guard.TryAcquire(patientID)
	if !ok {
		return nil, ErrAnalysisInProgress
	}
	defer release()

	if err := u.auditService.LogEvent(ctx, entity.AuditActionAnalysisRequest, entity.JSON{
		"patient_id":    patientID,
		"consultations": len(consultations),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	prompt := service.BuildEvolutionPrompt(*patient, consultations, u.now())
	text, err := u.generator.Generate(ctx, prompt)
	if err != nil {
		u.log.Errorf("AI analysis failed for patient %s: %+v", patientID, err)
		return nil, ErrAnalysisFailed
	}

	if strings.TrimSpace(text) == "" {
		text = emptyAnalysisText
	}

	return &dto.AnalysisResponse{
		PatientID: patientID,
		Summary:   text,
	}, nil
}
