package handler

import (
	"net/http"

	"hepatotrack/internal/usecase"
	"hepatotrack/pkg/response"
)

type ResearchHandler struct {
	researchUsecase usecase.ResearchUsecase
}

func NewResearchHandler(researchUsecase usecase.ResearchUsecase) *ResearchHandler {
	return &ResearchHandler{
		researchUsecase: researchUsecase,
	}
}

func (h *ResearchHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.researchUsecase.GetStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get research stats")
		return
	}

	response.Success(w, http.StatusOK, "Research stats retrieved successfully", stats)
}

func (h *ResearchHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.researchUsecase.ExportCSV(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to export dataset")
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Content)
}
