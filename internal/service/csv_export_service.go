package service

import (
	"io"
	"strconv"
	"strings"
	"time"

	"hepatotrack/internal/domain/entity"
)

const (
	// utf8BOM lets spreadsheet tools detect the encoding.
	utf8BOM = "\uFEFF"

	patientColumns      = 7
	consultationColumns = 16
)

// ExportHeaders are the fixed column names of the research export.
var ExportHeaders = []string{
	"PatientID", "MRN", "Nombre", "Apellido", "Genero", "FechaNacimiento", "Diagnostico",
	"ConsultaID", "FechaConsulta", "Peso(kg)", "Altura(cm)", "IMC", "Grasa(%)", "MasaMuscular(kg)",
	"AST", "ALT", "GGT", "Plaquetas", "FIB-4", "BilirrubinaT",
	"Rigidez(kPa)", "CAP(dB/m)", "Notas",
}

// CSVExporter flattens patients and their consultations into one CSV
// document with a row per consultation.
type CSVExporter struct {
	legacyQuoting bool
}

// NewCSVExporter returns an exporter. With legacyQuoting, embedded double
// quotes are written as-is instead of being doubled.
func NewCSVExporter(legacyQuoting bool) *CSVExporter {
	return &CSVExporter{legacyQuoting: legacyQuoting}
}

// ExportFilename returns the download name for an export produced at t.
func ExportFilename(t time.Time) string {
	return "HepatoTrack_Export_" + t.Format("2006-01-02") + ".csv"
}

// Rows returns the data rows, excluding the header. Patients keep their
// stored order; a patient without consultations yields one row whose
// consultation columns are empty. Consultations whose patient is not in
// patients are dropped.
func (e *CSVExporter) Rows(patients []entity.Patient, consultations []entity.Consultation) [][]string {
	byPatient := make(map[string][]entity.Consultation, len(patients))
	for _, c := range consultations {
		byPatient[c.PatientID] = append(byPatient[c.PatientID], c)
	}

	rows := make([][]string, 0, len(consultations)+len(patients))
	for _, p := range patients {
		pConsults := byPatient[p.ID]
		if len(pConsults) == 0 {
			row := append(patientFields(p), make([]string, consultationColumns)...)
			rows = append(rows, row)
			continue
		}
		for _, c := range pConsults {
			rows = append(rows, append(patientFields(p), consultationFields(c)...))
		}
	}
	return rows
}

// Write renders the full document, BOM and header included, to w.
func (e *CSVExporter) Write(w io.Writer, patients []entity.Patient, consultations []entity.Consultation) error {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(strings.Join(ExportHeaders, ","))

	for _, row := range e.Rows(patients, consultations) {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(e.quote(field))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (e *CSVExporter) quote(field string) string {
	if !e.legacyQuoting {
		field = strings.ReplaceAll(field, `"`, `""`)
	}
	return `"` + field + `"`
}

func patientFields(p entity.Patient) []string {
	fields := make([]string, 0, patientColumns+consultationColumns)
	return append(fields,
		p.ID,
		p.MRN,
		p.FirstName,
		p.LastName,
		string(p.Gender),
		formatDate(p.DateOfBirth),
		p.Diagnosis,
	)
}

func consultationFields(c entity.Consultation) []string {
	return []string{
		c.ID,
		formatDate(c.Date),
		formatNumber(c.Weight),
		formatNumber(c.Height),
		formatNumber(c.BMI),
		formatOptional(c.FatPercentage),
		formatOptional(c.MuscleMass),
		formatNumber(c.AST),
		formatNumber(c.ALT),
		formatOptional(c.GGT),
		formatNumber(c.Platelets),
		formatOptional(c.FIB4),
		formatOptional(c.BilirubinTotal),
		formatNumber(c.Stiffness),
		formatOptional(c.CAP),
		c.Notes,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatNumber uses the shortest representation: 30 not 30.0, 28.7 not 28.70.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}
