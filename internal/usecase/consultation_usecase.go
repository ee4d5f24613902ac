package usecase

import (
	"context"
	"errors"
	"slices"
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

var (
	ErrMissingRequiredFields = errors.New("weight and stiffness are required")
	ErrInvalidOrder          = errors.New("order must be asc or desc")
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type ConsultationUsecase interface {
	CreateConsultation(ctx context.Context, patientID string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID string, order string) (*dto.ConsultationListResponse, error)
	Calculate(ctx context.Context, patientID string, req *dto.CalculationRequest) (*dto.CalculationResponse, error)
	RenderCharts(ctx context.Context, patientID string) (string, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	chartService     *service.ChartService
	now              func() time.Time
}

func NewConsultationUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
	chartService *service.ChartService,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		patientRepo:      patientRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		chartService:     chartService,
		now:              time.Now,
	}
}

// CreateConsultation records a follow-up visit. BMI and FIB-4 are computed
// here from the submitted values and the patient's date of birth.
func (u *consultationUsecase) CreateConsultation(ctx context.Context, patientID string, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	if req.Weight == 0 || req.Stiffness == 0 {
		return nil, ErrMissingRequiredFields
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient, err := findPatient(ctx, u.log, u.patientRepo, patientID)
	if err != nil {
		return nil, err
	}

	bmi, _ := clinical.BMI(req.Weight, req.Height)
	fib4 := clinical.FIB4At(patient.DateOfBirth, date, req.AST, req.ALT, req.Platelets)

	consultation := &entity.Consultation{
		ID:             uuid.NewString(),
		PatientID:      patient.ID,
		Date:           date,
		Notes:          strings.TrimSpace(req.Notes),
		Weight:         req.Weight,
		Height:         req.Height,
		BMI:            bmi,
		MuscleMass:     req.MuscleMass,
		FatPercentage:  req.FatPercentage,
		VisceralFat:    req.VisceralFat,
		AST:            req.AST,
		ALT:            req.ALT,
		GGT:            req.GGT,
		BilirubinTotal: req.BilirubinTotal,
		Albumin:        req.Albumin,
		Platelets:      req.Platelets,
		INR:            req.INR,
		FIB4:           entity.Float(fib4),
		Stiffness:      req.Stiffness,
		CAP:            req.CAP,
		IQR:            req.IQR,
		CreatedAt:      u.now().UTC(),
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		if errors.Is(err, repository.ErrUnknownPatient) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	resp := converter.ConsultationToResponse(consultation)
	if err := u.auditService.LogCreate(ctx, entity.AuditActionConsultationCreate, "consultation", consultation.ID, resp); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return resp, nil
}

func (u *consultationUsecase) ListByPatient(ctx context.Context, patientID string, order string) (*dto.ConsultationListResponse, error) {
	order = strings.ToLower(strings.TrimSpace(order))
	if order != "" && order != OrderAsc && order != OrderDesc {
		return nil, ErrInvalidOrder
	}

	if _, err := findPatient(ctx, u.log, u.patientRepo, patientID); err != nil {
		return nil, err
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}
	if order == OrderDesc {
		slices.Reverse(consultations)
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// Calculate previews the derived scores for a consultation form that may be
// only partially filled. Nothing is stored.
func (u *consultationUsecase) Calculate(ctx context.Context, patientID string, req *dto.CalculationRequest) (*dto.CalculationResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	patient, err := findPatient(ctx, u.log, u.patientRepo, patientID)
	if err != nil {
		return nil, err
	}

	bmi, bmiOK := clinical.BMI(req.Weight, req.Height)
	age := clinical.AgeAt(patient.DateOfBirth, date)

	resp := &dto.CalculationResponse{
		BMI:            bmi,
		BMIComputed:    bmiOK,
		Age:            age,
		FIB4Computable: clinical.FIB4Computable(age, req.AST, req.ALT, req.Platelets),
	}
	if resp.FIB4Computable {
		resp.FIB4 = clinical.FIB4(age, req.AST, req.ALT, req.Platelets)
		if resp.FIB4 > 0 {
			resp.FIB4Risk = string(clinical.ClassifyFIB4(resp.FIB4))
		}
	}

	return resp, nil
}

func (u *consultationUsecase) RenderCharts(ctx context.Context, patientID string) (string, error) {
	patient, err := findPatient(ctx, u.log, u.patientRepo, patientID)
	if err != nil {
		return "", err
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return "", err
	}

	page, err := u.chartService.Render(*patient, consultations)
	if err != nil {
		u.log.Errorf("Failed to render charts: %+v", err)
		return "", err
	}
	return page, nil
}
