package entity

import (
	"time"
)

// Consultation is one follow-up visit. BMI and FIB4 are derived when the
// consultation is recorded and stored as plain values.
type Consultation struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	PatientID string    `gorm:"type:varchar(64);not null;index" json:"patientId"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	// Anthropometry & body composition
	Weight        float64  `gorm:"not null" json:"weight"` // kg
	Height        float64  `gorm:"not null" json:"height"` // cm
	BMI           float64  `gorm:"column:bmi;not null" json:"bmi"`
	MuscleMass    *float64 `json:"muscleMass,omitempty"`    // kg
	FatPercentage *float64 `json:"fatPercentage,omitempty"` // %
	VisceralFat   *float64 `json:"visceralFat,omitempty"`   // level

	// Liver profile
	AST            float64  `gorm:"column:ast;not null" json:"ast"` // U/L
	ALT            float64  `gorm:"column:alt;not null" json:"alt"` // U/L
	GGT            *float64 `gorm:"column:ggt" json:"ggt,omitempty"`
	BilirubinTotal *float64 `json:"bilirubinTotal,omitempty"` // mg/dL
	Albumin        *float64 `json:"albumin,omitempty"`        // g/dL
	Platelets      float64  `gorm:"not null" json:"platelets"` // 10^3/uL
	INR            *float64 `gorm:"column:inr" json:"inr,omitempty"`
	FIB4           *float64 `gorm:"column:fib4" json:"fib4,omitempty"`

	// Elastography
	Stiffness float64  `gorm:"not null" json:"stiffness"`        // kPa
	CAP       *float64 `gorm:"column:cap" json:"cap,omitempty"` // dB/m
	IQR       *float64 `gorm:"column:iqr" json:"iqr,omitempty"` // %

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// Float returns a pointer to v, for populating optional measurements.
func Float(v float64) *float64 {
	return &v
}
