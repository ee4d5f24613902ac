package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hepatotrack/internal/delivery/dto"
	"hepatotrack/internal/domain/repository"
	"hepatotrack/internal/usecase"
	"hepatotrack/pkg/response"
	"hepatotrack/pkg/validator"

	"github.com/gorilla/mux"
)

const msgMissingRequiredFields = "Peso y Rigidez (kPa) son campos obligatorios para el seguimiento básico."

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.CreateConsultation(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingRequiredFields):
			response.BadRequest(w, msgMissingRequiredFields)
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, repository.ErrDuplicateID), errors.Is(err, repository.ErrStoreConflict):
			response.Conflict(w, "Consultation could not be stored, please retry")
		default:
			response.InternalServerError(w, "Failed to create consultation")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation created successfully", consultation)
}

func (h *ConsultationHandler) GetConsultations(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.consultationUsecase.ListByPatient(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("order"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidOrder):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get consultations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.consultationUsecase.Calculate(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to calculate scores")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scores calculated successfully", result)
}

func (h *ConsultationHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	page, err := h.consultationUsecase.RenderCharts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to render charts")
		return
	}

	response.HTML(w, http.StatusOK, page)
}
