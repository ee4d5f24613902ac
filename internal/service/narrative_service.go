package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hepatotrack/internal/domain/entity"
)

// NarrativeGenerator produces free text from a prompt using a generative
// model. Implementations live in internal/infrastructure/ai.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BuildEvolutionPrompt renders the Spanish-language prompt asking for a
// short clinical summary of the patient's evolution.
func BuildEvolutionPrompt(patient entity.Patient, consultations []entity.Consultation, now time.Time) string {
	var history strings.Builder
	for i, c := range consultations {
		capText := "N/A"
		if c.CAP != nil && *c.CAP != 0 {
			capText = formatNumber(*c.CAP)
		}
		fmt.Fprintf(&history, "Consulta %d (%s):\n", i+1, c.Date.Format("2006-01-02"))
		fmt.Fprintf(&history, "- Peso: %skg, IMC: %s\n", formatNumber(c.Weight), formatNumber(c.BMI))
		fmt.Fprintf(&history, "- Hígado (AST/ALT): %s/%s U/L\n", formatNumber(c.AST), formatNumber(c.ALT))
		fmt.Fprintf(&history, "- Plaquetas: %s\n", formatNumber(c.Platelets))
		fmt.Fprintf(&history, "- Elastografía (Rigidez): %s kPa\n", formatNumber(c.Stiffness))
		fmt.Fprintf(&history, "- CAP (Grasa): %s dB/m\n\n", capText)
	}

	approxAge := now.Year() - patient.DateOfBirth.Year()

	return fmt.Sprintf(`Actúa como un médico especialista en hepatología experto e investigador clínico.
Analiza la evolución del siguiente paciente:

Paciente: %s %s
Diagnóstico: %s
Edad: %d años approx.

Historial de Consultas:
%s
Por favor, genera un resumen clínico breve (máximo 2 párrafos) enfocado en:
1. La tendencia de la fibrosis (Rigidez/Elastografía) y la función hepática (AST/ALT).
2. La correlación con cambios antropométricos (Peso/IMC).
3. Una conclusión sobre si el paciente está respondiendo al tratamiento o si hay signos de alarma (ej. hipertensión portal sugerida por plaquetas).

Usa lenguaje médico profesional en Español.
`, patient.FirstName, patient.LastName, patient.Diagnosis, approxAge, history.String())
}
