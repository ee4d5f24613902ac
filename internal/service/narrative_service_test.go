package service

import (
	"testing"
	"time"

	"hepatotrack/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildEvolutionPrompt(t *testing.T) {
	first := exportConsultation("c1", "A", 1)
	first.CAP = entity.Float(310)
	second := exportConsultation("c2", "A", 20)
	second.Weight = 88

	prompt := BuildEvolutionPrompt(exportPatient("A"), []entity.Consultation{first, second},
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.Contains(t, prompt, "Paciente: Ana Ruiz")
	assert.Contains(t, prompt, "Diagnóstico: MASLD")
	assert.Contains(t, prompt, "Edad: 45 años approx.")
	assert.Contains(t, prompt, "Consulta 1 (2024-05-01):")
	assert.Contains(t, prompt, "- CAP (Grasa): 310 dB/m")
	assert.Contains(t, prompt, "Consulta 2 (2024-05-20):")
	assert.Contains(t, prompt, "- Peso: 88kg, IMC: 30")
	assert.Contains(t, prompt, "- CAP (Grasa): N/A dB/m")
}
