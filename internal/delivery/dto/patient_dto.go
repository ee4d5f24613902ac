package dto

import (
	"time"
)

type CreatePatientRequest struct {
	MRN         string `json:"mrn" validate:"required,max=64"`
	FirstName   string `json:"first_name" validate:"required,max=255"`
	LastName    string `json:"last_name" validate:"required,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" validate:"required,oneof=M F Other"`
	Diagnosis   string `json:"diagnosis" validate:"required"`
}

type PatientResponse struct {
	ID          string    `json:"id"`
	MRN         string    `json:"mrn"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth string    `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Diagnosis   string    `json:"diagnosis"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientDetailResponse adds the figures shown in the patient header.
type PatientDetailResponse struct {
	PatientResponse
	Age               int `json:"age"`
	ConsultationCount int `json:"consultation_count"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
