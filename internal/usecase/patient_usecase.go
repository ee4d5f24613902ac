package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hepatotrack/internal/converter"
	"hepatotrack/internal/delivery/dto"
	"hepatotrack/internal/domain/entity"
	"hepatotrack/internal/domain/repository"
	"hepatotrack/internal/service"
	"hepatotrack/pkg/clinical"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, query string) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, patientID string) (*dto.PatientDetailResponse, error)
}

type patientUsecase struct {
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	now              func() time.Time
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:              log,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

func (u *patientUsecase) RegisterPatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dob, err := time.Parse(dateLayout, req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient := &entity.Patient{
		ID:          uuid.NewString(),
		MRN:         strings.TrimSpace(req.MRN),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
		Gender:      entity.Gender(req.Gender),
		Diagnosis:   strings.TrimSpace(req.Diagnosis),
		CreatedAt:   u.now().UTC(),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	resp := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, entity.AuditActionPatientCreate, "patient", patient.ID, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

// GetAllPatients lists patients in registration order. A non-empty query
// keeps patients whose first or last name contains it (case-insensitive) or
// whose MRN contains it verbatim.
func (u *patientUsecase) GetAllPatients(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	if query = strings.TrimSpace(query); query != "" {
		patients = filterPatients(patients, query)
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, patientID string) (*dto.PatientDetailResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}

	return &dto.PatientDetailResponse{
		PatientResponse:   *converter.PatientToResponse(patient),
		Age:               clinical.AgeAt(patient.DateOfBirth, u.now()),
		ConsultationCount: len(consultations),
	}, nil
}

func filterPatients(patients []entity.Patient, query string) []entity.Patient {
	lower := strings.ToLower(query)
	filtered := make([]entity.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.LastName), lower) ||
			strings.Contains(strings.ToLower(p.FirstName), lower) ||
			strings.Contains(p.MRN, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// findPatient is shared by the usecases that operate on one patient.
func findPatient(ctx context.Context, log *logrus.Logger, repo repository.PatientRepository, patientID string) (*entity.Patient, error) {
	patient, err := repo.FindByID(ctx, patientID)
	if err != nil {
		log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}
