package service

import (
	"testing"

	"hepatotrack/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartService_RenderEmpty(t *testing.T) {
	out, err := NewChartService().Render(exportPatient("A"), nil)
	require.NoError(t, err)
	assert.Contains(t, out, noChartData)
	assert.Contains(t, out, "Ana Ruiz")
}

func TestChartService_RenderTrends(t *testing.T) {
	legacy := exportConsultation("c1", "A", 1)
	legacy.FIB4 = nil
	consultations := []entity.Consultation{legacy, exportConsultation("c2", "A", 9)}

	out, err := NewChartService().Render(exportPatient("A"), consultations)
	require.NoError(t, err)

	assert.Contains(t, out, "echarts")
	for _, name := range []string{"Rigidez (kPa)", "ALT", "AST", "FIB-4", "Peso (kg)", "IMC"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "May 9, 24")
	assert.Contains(t, out, "3.25")
}
