package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/response"
	"github.com/yashsaxena18/curesight-server/pkg/validator"
)

type HealthHandler struct {
	healthUsecase usecase.HealthUsecase
	validator     *validator.CustomValidator
}

func NewHealthHandler(healthUsecase usecase.HealthUsecase, validator *validator.CustomValidator) *HealthHandler {
	return &HealthHandler{
		healthUsecase: healthUsecase,
		validator:     validator,
	}
}

// SubmitDailyLog upserts today's wellness entry
// @Summary Submit daily health log
// @Tags Health
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.DailyLogRequest true "Daily Log Request"
// @Success 200 {object} response.Response
// @Router /health/daily-log [post]
func (h *HealthHandler) SubmitDailyLog(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.DailyLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	log, err := h.healthUsecase.SubmitDailyLog(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrLogDateInFuture:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to save daily log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Daily log saved successfully", log)
}

// GetDailyLogs lists wellness entries over a date range
// @Summary List daily health logs
// @Tags Health
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /health/daily-log [get]
func (h *HealthHandler) GetDailyLogs(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	logs, err := h.healthUsecase.GetDailyLogs(r.Context(), patientID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to list daily logs")
		}
		return
	}

	response.Success(w, http.StatusOK, "Daily logs retrieved successfully", logs)
}

// GetMetrics aggregates the caller's logs over a date range
// @Summary Get health metrics
// @Tags Health
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date YYYY-MM-DD"
// @Param to query string false "End date YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /health/metrics [get]
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	metrics, err := h.healthUsecase.GetMetrics(r.Context(), patientID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to aggregate metrics")
		}
		return
	}

	response.Success(w, http.StatusOK, "Metrics retrieved successfully", metrics)
}

// CreateRecord stores uploaded document metadata
// @Summary Create health record
// @Tags Health
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateHealthRecordRequest true "Record Request"
// @Success 201 {object} response.Response
// @Router /health/records [post]
func (h *HealthHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	uploaderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.healthUsecase.CreateRecord(r.Context(), uploaderID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create health record")
		return
	}

	response.Success(w, http.StatusCreated, "Health record created successfully", record)
}

// ListRecords lists the caller's uploaded records
// @Summary List health records
// @Tags Health
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /health/records [get]
func (h *HealthHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	uploaderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.healthUsecase.ListRecords(r.Context(), uploaderID)
	if err != nil {
		response.InternalServerError(w, "Failed to list health records")
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}
