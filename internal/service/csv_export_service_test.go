package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"hepatotrack/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportPatient(id string) entity.Patient {
	return entity.Patient{
		ID:          id,
		MRN:         "HEP-" + id,
		FirstName:   "Ana",
		LastName:    "Ruiz",
		DateOfBirth: time.Date(1980, time.February, 3, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
		Diagnosis:   "MASLD",
	}
}

func exportConsultation(id, patientID string, day int) entity.Consultation {
	return entity.Consultation{
		ID:        id,
		PatientID: patientID,
		Date:      time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC),
		Weight:    92,
		Height:    175,
		BMI:       30.0,
		AST:       85,
		ALT:       110,
		Platelets: 180,
		FIB4:      entity.Float(2.12),
		Stiffness: 12.5,
	}
}

func TestCSVExporter_RowCount(t *testing.T) {
	patients := []entity.Patient{exportPatient("A"), exportPatient("B")}
	consultations := []entity.Consultation{
		exportConsultation("b1", "B", 1),
		exportConsultation("b2", "B", 2),
		exportConsultation("b3", "B", 3),
	}

	rows := NewCSVExporter(false).Rows(patients, consultations)
	require.Len(t, rows, 4)
	assert.Equal(t, "A", rows[0][0])
	for _, row := range rows[1:] {
		assert.Equal(t, "B", row[0])
	}

	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter(false).Write(&buf, patients, consultations))
	lines := strings.Split(strings.TrimPrefix(buf.String(), utf8BOM), "\n")
	assert.Len(t, lines, 5, "header plus four data rows")
}

func TestCSVExporter_PlaceholderRow(t *testing.T) {
	rows := NewCSVExporter(false).Rows([]entity.Patient{exportPatient("A")}, nil)
	require.Len(t, rows, 1)
	row := rows[0]
	require.Len(t, row, len(ExportHeaders))

	for i := 0; i < patientColumns; i++ {
		assert.NotEmpty(t, row[i], ExportHeaders[i])
	}
	for i := patientColumns; i < len(row); i++ {
		assert.Empty(t, row[i], ExportHeaders[i])
	}
}

func TestCSVExporter_ConsultationRow(t *testing.T) {
	c := exportConsultation("c1", "A", 15)
	c.MuscleMass = entity.Float(38.5)
	c.CAP = entity.Float(310)
	c.Notes = "Primera consulta"

	rows := NewCSVExporter(false).Rows([]entity.Patient{exportPatient("A")}, []entity.Consultation{c})
	require.Len(t, rows, 1)

	assert.Equal(t, []string{
		"A", "HEP-A", "Ana", "Ruiz", "F", "1980-02-03", "MASLD",
		"c1", "2024-05-15", "92", "175", "30", "", "38.5",
		"85", "110", "", "180", "2.12", "",
		"12.5", "310", "Primera consulta",
	}, rows[0])
}

func TestCSVExporter_AbsentAndZeroScoreDiffer(t *testing.T) {
	legacy := exportConsultation("c1", "A", 1)
	legacy.FIB4 = nil
	computedZero := exportConsultation("c2", "A", 2)
	computedZero.FIB4 = entity.Float(0)

	rows := NewCSVExporter(false).Rows([]entity.Patient{exportPatient("A")}, []entity.Consultation{legacy, computedZero})
	fib4 := 18
	require.Equal(t, "FIB-4", ExportHeaders[fib4])
	assert.Equal(t, "", rows[0][fib4])
	assert.Equal(t, "0", rows[1][fib4])
}

func TestCSVExporter_DropsOrphansAndKeepsPatientOrder(t *testing.T) {
	patients := []entity.Patient{exportPatient("Z"), exportPatient("A")}
	consultations := []entity.Consultation{
		exportConsultation("orphan", "ghost", 1),
		exportConsultation("a1", "A", 2),
	}

	rows := NewCSVExporter(false).Rows(patients, consultations)
	require.Len(t, rows, 2)
	assert.Equal(t, "Z", rows[0][0])
	assert.Equal(t, "a1", rows[1][7])
}

func TestCSVExporter_WriteFormat(t *testing.T) {
	c := exportConsultation("c1", "A", 1)
	c.Notes = `dijo "mejor", sin dolor`

	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter(false).Write(&buf, []entity.Patient{exportPatient("A")}, []entity.Consultation{c}))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, utf8BOM))
	lines := strings.Split(strings.TrimPrefix(out, utf8BOM), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(ExportHeaders, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"A","HEP-A","Ana",`))
	assert.True(t, strings.HasSuffix(lines[1], `"dijo ""mejor"", sin dolor"`))
}

func TestCSVExporter_LegacyQuoting(t *testing.T) {
	c := exportConsultation("c1", "A", 1)
	c.Notes = `dijo "mejor"`

	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter(true).Write(&buf, []entity.Patient{exportPatient("A")}, []entity.Consultation{c}))
	assert.True(t, strings.HasSuffix(buf.String(), `"dijo "mejor""`))
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2024, time.July, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "HepatoTrack_Export_2024-07-09.csv", ExportFilename(at))
}
