package handler

import (
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxScreeningMemory bounds how much of the multipart form is buffered in
// memory before spilling to disk.
const maxScreeningMemory = 10 << 20

type ScreeningHandler struct {
	screeningUsecase usecase.ScreeningUsecase
}

func NewScreeningHandler(screeningUsecase usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{screeningUsecase: screeningUsecase}
}

// Analyze accepts a mammogram upload and starts the analysis pipeline
// @Summary Submit mammogram for analysis
// @Tags Screening
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Mammogram image (PNG or JPEG)"
// @Success 202 {object} response.Response
// @Router /cancer/analyze [post]
func (h *ScreeningHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := r.ParseMultipartForm(maxScreeningMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Image file is required", nil)
		return
	}
	defer file.Close()

	job, err := h.screeningUsecase.Submit(r.Context(), patientID, file, header)
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedImage:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrFileTooLarge:
			response.Error(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to submit screening")
		}
		return
	}

	response.Success(w, http.StatusAccepted, "Screening submitted successfully", job)
}

// GetStatus serves the polling endpoint for one analysis job
// @Summary Get analysis status
// @Tags Screening
// @Security BearerAuth
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cancer/analysis/{id} [get]
func (h *ScreeningHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid job ID", nil)
		return
	}

	status, err := h.screeningUsecase.GetStatus(r.Context(), patientID, jobID)
	if err != nil {
		switch err {
		case usecase.ErrScreeningNotFound:
			response.NotFound(w, "Screening job not found")
		case usecase.ErrScreeningNotOwned:
			response.Forbidden(w, "Screening job does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get screening status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Screening status retrieved successfully", status)
}

// ListMine lists the caller's past analyses
// @Summary List my screenings
// @Tags Screening
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /cancer/analyses [get]
func (h *ScreeningHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	jobs, err := h.screeningUsecase.ListMine(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to list screenings")
		return
	}

	response.Success(w, http.StatusOK, "Screenings retrieved successfully", jobs)
}
