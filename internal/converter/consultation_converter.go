package converter

import (
	"hepatotrack/internal/delivery/dto"
	"hepatotrack/internal/domain/entity"
	"hepatotrack/pkg/clinical"
)

// ConsultationToResponse converts a Consultation entity to ConsultationResponse DTO.
// The risk band is only attached to a stored, non-zero score.
func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	resp := &dto.ConsultationResponse{
		ID:             c.ID,
		PatientID:      c.PatientID,
		Date:           c.Date.Format("2006-01-02"),
		Notes:          c.Notes,
		Weight:         c.Weight,
		Height:         c.Height,
		BMI:            c.BMI,
		MuscleMass:     c.MuscleMass,
		FatPercentage:  c.FatPercentage,
		VisceralFat:    c.VisceralFat,
		AST:            c.AST,
		ALT:            c.ALT,
		GGT:            c.GGT,
		BilirubinTotal: c.BilirubinTotal,
		Albumin:        c.Albumin,
		Platelets:      c.Platelets,
		INR:            c.INR,
		FIB4:           c.FIB4,
		Stiffness:      c.Stiffness,
		CAP:            c.CAP,
		IQR:            c.IQR,
		CreatedAt:      c.CreatedAt,
	}
	if c.FIB4 != nil && *c.FIB4 > 0 {
		resp.FIB4Risk = string(clinical.ClassifyFIB4(*c.FIB4))
	}
	return resp
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}
