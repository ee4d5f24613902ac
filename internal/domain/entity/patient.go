package entity

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "Other"
)

// Patient is a member of a hepatology cohort. Patients are immutable once
// registered.
type Patient struct {
	ID          string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	MRN         string    `gorm:"type:varchar(64);index;not null" json:"mrn"`
	FirstName   string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName    string    `gorm:"type:varchar(255);not null" json:"lastName"`
	DateOfBirth time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Gender      Gender    `gorm:"type:varchar(8);not null" json:"gender"`
	Diagnosis   string    `gorm:"type:text" json:"diagnosis"`
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`

	// Relationships
	Consultations []Consultation `gorm:"foreignKey:PatientID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}
