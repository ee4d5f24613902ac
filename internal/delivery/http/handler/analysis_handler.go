package handler

import (
	"errors"
	"net/http"

	"hepatotrack/internal/usecase"
	"hepatotrack/pkg/response"

	"github.com/gorilla/mux"
)

const (
	msgInsufficientConsultations = "Se necesitan al menos 2 consultas para analizar la evolución."
	msgAnalysisUnavailable       = "API Key no configurada. Por favor configure GEMINI_API_KEY para usar IA."
	msgAnalysisFailed            = "Ocurrió un error al intentar conectar con el servicio de IA."
	msgAnalysisInProgress        = "Ya hay un análisis en curso para este paciente."
)

type AnalysisHandler struct {
	analysisUsecase usecase.AnalysisUsecase
}

func NewAnalysisHandler(analysisUsecase usecase.AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
	}
}

func (h *AnalysisHandler) AnalyzeEvolution(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.analysisUsecase.AnalyzeEvolution(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrInsufficientConsultations):
			response.UnprocessableEntity(w, msgInsufficientConsultations)
		case errors.Is(err, usecase.ErrAnalysisUnavailable):
			response.ServiceUnavailable(w, msgAnalysisUnavailable)
		case errors.Is(err, usecase.ErrAnalysisInProgress):
			response.Conflict(w, msgAnalysisInProgress)
		case errors.Is(err, usecase.ErrAnalysisFailed):
			response.BadGateway(w, msgAnalysisFailed)
		default:
			response.InternalServerError(w, "Failed to analyze patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Analysis generated successfully", analysis)
}
