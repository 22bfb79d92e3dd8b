package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/response"
	"github.com/yashsaxena18/curesight-server/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// Create opens a new availability slot for the authenticated doctor
// @Summary Create schedule
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Schedule Request"
// @Success 201 {object} response.Response
// @Router /schedules [post]
func (h *DoctorScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.CreateSchedule(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorNotVerified:
			response.Forbidden(w, "Doctor account is not verified")
		case usecase.ErrInvalidScheduleDate, usecase.ErrInvalidTimeFormat,
			usecase.ErrInvalidTimeRange, usecase.ErrScheduleInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create schedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule created successfully", schedule)
}

// GetAvailable lists bookable schedules from verified doctors
// @Summary List available schedules
// @Tags Schedules
// @Produce json
// @Param start_at query string false "Start date YYYY-MM-DD"
// @Param end_at query string false "End date YYYY-MM-DD"
// @Param doctor_name query string false "Filter by doctor name"
// @Param specialization query string false "Filter by specialization"
// @Success 200 {object} response.Response
// @Router /schedules [get]
func (h *DoctorScheduleHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &dto.ScheduleFilterRequest{
		StartAt:        query.Get("start_at"),
		EndAt:          query.Get("end_at"),
		DoctorName:     query.Get("doctor_name"),
		Specialization: query.Get("specialization"),
	}

	schedules, err := h.scheduleUsecase.GetAvailableSchedules(r.Context(), req)
	if err != nil {
		response.InternalServerError(w, "Failed to list schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// GetByID returns one schedule
// @Summary Get schedule
// @Tags Schedules
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /schedules/{id} [get]
func (h *DoctorScheduleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		default:
			response.InternalServerError(w, "Failed to get schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

// GetMine lists the authenticated doctor's own schedules
// @Summary List my schedules
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /schedules/mine [get]
func (h *DoctorScheduleHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	schedules, err := h.scheduleUsecase.GetSchedulesByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to list schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// Update changes times or quota on an owned schedule
// @Summary Update schedule
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Update Request"
// @Success 200 {object} response.Response
// @Router /schedules/{id} [put]
func (h *DoctorScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSchedule(r.Context(), doctorID, scheduleID, &req)
	if err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		case usecase.ErrScheduleNotOwned:
			response.Forbidden(w, "Schedule belongs to another doctor")
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule updated successfully", schedule)
}

// Delete removes an owned schedule
// @Summary Delete schedule
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Response
// @Router /schedules/{id} [delete]
func (h *DoctorScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	scheduleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid schedule ID", nil)
		return
	}

	if err := h.scheduleUsecase.DeleteSchedule(r.Context(), doctorID, scheduleID); err != nil {
		switch err {
		case usecase.ErrScheduleNotFound:
			response.NotFound(w, "Schedule not found")
		case usecase.ErrScheduleNotOwned:
			response.Forbidden(w, "Schedule belongs to another doctor")
		default:
			response.InternalServerError(w, "Failed to delete schedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule deleted successfully", nil)
}
