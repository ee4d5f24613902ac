package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hepatotrack/internal/delivery/http/handler"
	"hepatotrack/internal/delivery/http/middleware"
	"hepatotrack/internal/repository"
	"hepatotrack/internal/service"
	"hepatotrack/internal/usecase"
	"hepatotrack/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.text, g.err
}

func newTestServer(t *testing.T, generator service.NarrativeGenerator) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	repos := repository.NewRedisRepositories(client)
	require.NoError(t, repos.Seeder.SeedIfEmpty(context.Background(), repository.DemoPatients(), repository.DemoConsultations()))

	guard := service.NewInflightGuard(log)
	t.Cleanup(guard.Stop)

	audit := service.NewAuditService(log, repos.AuditLogs)
	v := validator.NewValidator()

	router := NewRouter(
		handler.NewPatientHandler(usecase.NewPatientUsecase(log, repos.Patients, repos.Consultations, audit), v),
		handler.NewConsultationHandler(usecase.NewConsultationUsecase(log, repos.Patients, repos.Consultations, audit, service.NewChartService()), v),
		handler.NewResearchHandler(usecase.NewResearchUsecase(log, repos.Patients, repos.Consultations, audit, service.NewCSVExporter(false))),
		handler.NewAnalysisHandler(usecase.NewAnalysisUsecase(log, repos.Patients, repos.Consultations, audit, generator, guard, time.Second)),
		middleware.NewCORSMiddleware(nil),
		middleware.NewLoggingMiddleware(log),
	)
	return router.Setup()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, reader))

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t, nil)
	rec, _ := do(t, h, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_PatientLifecycle(t *testing.T) {
	h := newTestServer(t, nil)

	rec, env := do(t, h, http.MethodPost, "/api/v1/patients", `{
		"mrn": "HEP-2024-010",
		"first_name": "Lucia",
		"last_name": "Perez",
		"date_of_birth": "1990-06-02",
		"gender": "F",
		"diagnosis": "MASLD"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	rec, env = do(t, h, http.MethodGet, "/api/v1/patients?q=perez", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/patients/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/patients/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PatientValidation(t *testing.T) {
	h := newTestServer(t, nil)

	rec, env := do(t, h, http.MethodPost, "/api/v1/patients", `{"mrn":"X","gender":"Z","date_of_birth":"1990/06/02"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "gender")
	assert.Equal(t, "date_of_birth must be a date in YYYY-MM-DD format", fields["date_of_birth"])

	rec, _ = do(t, h, http.MethodPost, "/api/v1/patients", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Consultations(t *testing.T) {
	h := newTestServer(t, nil)

	rec, env := do(t, h, http.MethodPost, "/api/v1/patients/p2/consultations", `{"date":"2024-06-01","weight":61}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Peso y Rigidez (kPa) son campos obligatorios para el seguimiento básico.", env.Message)

	rec, env = do(t, h, http.MethodPost, "/api/v1/patients/p2/consultations",
		`{"date":"2024-06-01","weight":61,"height":160,"ast":50,"alt":40,"platelets":150,"stiffness":6.2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		BMI      float64  `json:"bmi"`
		FIB4     *float64 `json:"fib4"`
		FIB4Risk string   `json:"fib4_risk"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 23.8, created.BMI)
	require.NotNil(t, created.FIB4)
	assert.Greater(t, *created.FIB4, 0.0)
	assert.NotEmpty(t, created.FIB4Risk)

	rec, _ = do(t, h, http.MethodPost, "/api/v1/patients/ghost/consultations", `{"date":"2024-06-01","weight":61,"stiffness":6}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, h, http.MethodGet, "/api/v1/patients/p1/consultations?order=desc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Consultations []struct {
			ID string `json:"id"`
		} `json:"consultations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Consultations, 3)
	assert.Equal(t, "c3", list.Consultations[0].ID)

	rec, _ = do(t, h, http.MethodGet, "/api/v1/patients/p1/consultations?order=random", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Calculations(t *testing.T) {
	h := newTestServer(t, nil)

	rec, env := do(t, h, http.MethodPost, "/api/v1/patients/p1/calculations", `{"date":"2023-01-15","weight":92,"height":175}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var calc struct {
		BMI            float64 `json:"bmi"`
		BMIComputed    bool    `json:"bmi_computed"`
		Age            int     `json:"age"`
		FIB4Computable bool    `json:"fib4_computable"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &calc))
	assert.Equal(t, 30.0, calc.BMI)
	assert.True(t, calc.BMIComputed)
	assert.Equal(t, 47, calc.Age)
	assert.False(t, calc.FIB4Computable)
}

func TestRouter_Charts(t *testing.T) {
	h := newTestServer(t, nil)

	rec, _ := do(t, h, http.MethodGet, "/api/v1/patients/p1/charts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "echarts")
}

func TestRouter_Research(t *testing.T) {
	h := newTestServer(t, nil)

	rec, env := do(t, h, http.MethodGet, "/api/v1/research/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_patients":2,"total_consultations":3}`, string(env.Data))

	rec, _ = do(t, h, http.MethodGet, "/api/v1/research/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=HepatoTrack_Export_")
	lines := bytes.Split(rec.Body.Bytes(), []byte("\n"))
	assert.Len(t, lines, 5, "header, three consultations and one placeholder row")
}

func TestRouter_Analysis(t *testing.T) {
	tests := []struct {
		name      string
		generator service.NarrativeGenerator
		patient   string
		status    int
		message   string
	}{
		{"not configured", nil, "p1", http.StatusServiceUnavailable, "API Key no configurada. Por favor configure GEMINI_API_KEY para usar IA."},
		{"too few consultations", stubGenerator{text: "ok"}, "p2", http.StatusUnprocessableEntity, "Se necesitan al menos 2 consultas para analizar la evolución."},
		{"upstream failure", stubGenerator{err: errors.New("boom")}, "p1", http.StatusBadGateway, "Ocurrió un error al intentar conectar con el servicio de IA."},
		{"success", stubGenerator{text: "Mejoría de la rigidez hepática."}, "p1", http.StatusOK, "Analysis generated successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.generator)
			rec, env := do(t, h, http.MethodPost, "/api/v1/patients/"+tt.patient+"/analysis", "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, env.Message)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	h := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/patients", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
