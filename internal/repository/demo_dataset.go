package repository

import (
	"time"

	"hepatotrack/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoPatients is the dataset written to an empty store on first start.
func DemoPatients() []entity.Patient {
	return []entity.Patient{
		{
			ID:          "p1",
			MRN:         "HEP-2023-001",
			FirstName:   "Carlos",
			LastName:    "Mendez",
			DateOfBirth: day(1975, time.April, 12),
			Gender:      entity.GenderMale,
			Diagnosis:   "NASH (Esteatohepatitis No Alcohólica)",
			CreatedAt:   time.Date(2023, time.January, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "p2",
			MRN:         "HEP-2023-045",
			FirstName:   "Maria",
			LastName:    "Gonzalez",
			DateOfBirth: day(1982, time.August, 23),
			Gender:      entity.GenderFemale,
			Diagnosis:   "Hepatitis C Crónica",
			CreatedAt:   time.Date(2023, time.March, 10, 9, 30, 0, 0, time.UTC),
		},
	}
}

// DemoConsultations belong to DemoPatients. They predate FIB-4 tracking and
// carry no stored score.
func DemoConsultations() []entity.Consultation {
	return []entity.Consultation{
		{
			ID:            "c1",
			PatientID:     "p1",
			Date:          day(2023, time.January, 15),
			Weight:        92,
			Height:        175,
			BMI:           30.0,
			MuscleMass:    entity.Float(38),
			FatPercentage: entity.Float(32),
			AST:           85,
			ALT:           110,
			Platelets:     180,
			Stiffness:     12.5,
			CAP:           entity.Float(310),
			Notes:         "Primera consulta. Paciente con sobrepeso y enzimas elevadas.",
			CreatedAt:     day(2023, time.January, 15),
		},
		{
			ID:            "c2",
			PatientID:     "p1",
			Date:          day(2023, time.June, 20),
			Weight:        88,
			Height:        175,
			BMI:           28.7,
			MuscleMass:    entity.Float(38.5),
			FatPercentage: entity.Float(30),
			AST:           60,
			ALT:           75,
			Platelets:     185,
			Stiffness:     10.2,
			CAP:           entity.Float(290),
			Notes:         "Mejoría tras cambios en dieta.",
			CreatedAt:     day(2023, time.June, 20),
		},
		{
			ID:            "c3",
			PatientID:     "p1",
			Date:          day(2023, time.December, 5),
			Weight:        85,
			Height:        175,
			BMI:           27.7,
			MuscleMass:    entity.Float(39),
			FatPercentage: entity.Float(28),
			AST:           45,
			ALT:           50,
			Platelets:     190,
			Stiffness:     8.5,
			CAP:           entity.Float(260),
			Notes:         "Respuesta sostenida. Fibrosis en descenso.",
			CreatedAt:     day(2023, time.December, 5),
		},
	}
}
