package dto

import (
	"time"
)

// CreateConsultationRequest carries the follow-up form. BMI and FIB-4 are
// never accepted from the client; they are derived on save.
type CreateConsultationRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Notes string `json:"notes"`

	Weight        float64  `json:"weight"`
	Height        float64  `json:"height"`
	MuscleMass    *float64 `json:"muscle_mass"`
	FatPercentage *float64 `json:"fat_percentage"`
	VisceralFat   *float64 `json:"visceral_fat"`

	AST            float64  `json:"ast"`
	ALT            float64  `json:"alt"`
	GGT            *float64 `json:"ggt"`
	BilirubinTotal *float64 `json:"bilirubin_total"`
	Albumin        *float64 `json:"albumin"`
	Platelets      float64  `json:"platelets"`
	INR            *float64 `json:"inr"`

	Stiffness float64  `json:"stiffness"`
	CAP       *float64 `json:"cap"`
	IQR       *float64 `json:"iqr"`
}

type ConsultationResponse struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Notes     string `json:"notes,omitempty"`

	Weight        float64  `json:"weight"`
	Height        float64  `json:"height"`
	BMI           float64  `json:"bmi"`
	MuscleMass    *float64 `json:"muscle_mass,omitempty"`
	FatPercentage *float64 `json:"fat_percentage,omitempty"`
	VisceralFat   *float64 `json:"visceral_fat,omitempty"`

	AST            float64  `json:"ast"`
	ALT            float64  `json:"alt"`
	GGT            *float64 `json:"ggt,omitempty"`
	BilirubinTotal *float64 `json:"bilirubin_total,omitempty"`
	Albumin        *float64 `json:"albumin,omitempty"`
	Platelets      float64  `json:"platelets"`
	INR            *float64 `json:"inr,omitempty"`
	FIB4           *float64 `json:"fib4,omitempty"`
	FIB4Risk       string   `json:"fib4_risk,omitempty"`

	Stiffness float64  `json:"stiffness"`
	CAP       *float64 `json:"cap,omitempty"`
	IQR       *float64 `json:"iqr,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

// CalculationRequest holds the partially filled form the client sends after
// each edit to a field that feeds a derived score.
type CalculationRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	AST       float64 `json:"ast"`
	ALT       float64 `json:"alt"`
	Platelets float64 `json:"platelets"`
}

type CalculationResponse struct {
	BMI            float64 `json:"bmi"`
	BMIComputed    bool    `json:"bmi_computed"`
	Age            int     `json:"age"`
	FIB4           float64 `json:"fib4"`
	FIB4Computable bool    `json:"fib4_computable"`
	FIB4Risk       string  `json:"fib4_risk,omitempty"`
}
