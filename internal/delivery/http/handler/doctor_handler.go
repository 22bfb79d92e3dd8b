package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/response"
	"github.com/yashsaxena18/curesight-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DoctorHandler serves both the public doctor directory and the admin
// verification endpoints.
type DoctorHandler struct {
	profileUsecase      usecase.DoctorProfileUsecase
	verificationUsecase usecase.DoctorVerificationUsecase
	validator           *validator.CustomValidator
}

func NewDoctorHandler(
	profileUsecase usecase.DoctorProfileUsecase,
	verificationUsecase usecase.DoctorVerificationUsecase,
	validator *validator.CustomValidator,
) *DoctorHandler {
	return &DoctorHandler{
		profileUsecase:      profileUsecase,
		verificationUsecase: verificationUsecase,
		validator:           validator,
	}
}

// ListVerified returns the patient-facing doctor directory
// @Summary List verified doctors
// @Tags Doctors
// @Produce json
// @Param specialization query string false "Filter by specialization"
// @Param name query string false "Filter by doctor name"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	filter := &repository.DoctorFilter{
		Specialization: r.URL.Query().Get("specialization"),
		Name:           r.URL.Query().Get("name"),
	}

	doctors, err := h.profileUsecase.ListVerified(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetByID returns one verified doctor's public profile
// @Summary Get doctor profile
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor user ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.profileUsecase.GetByID(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotListed:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetPending returns the admin review queue
// @Summary List doctors pending verification
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/pending [get]
func (h *DoctorHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.verificationUsecase.GetPendingDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

// Approve verifies a doctor account
// @Summary Approve doctor verification
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor user ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{id}/approve [post]
func (h *DoctorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.verificationUsecase.Approve, "Doctor approved successfully")
}

// Reject rejects a doctor account; review notes are required
// @Summary Reject doctor verification
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor user ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors/{id}/reject [post]
func (h *DoctorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.verificationUsecase.Reject, "Doctor rejected")
}

// RequestDocuments asks the doctor for more documents and moves the
// profile to in_review
// @Summary Request additional documents
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor user ID"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id}/request-documents [post]
func (h *DoctorHandler) RequestDocuments(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.verificationUsecase.RequestDocuments, "Documents requested")
}

type decisionFunc func(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error)

func (h *DoctorHandler) decide(w http.ResponseWriter, r *http.Request, fn decisionFunc, successMessage string) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.VerificationDecisionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
			return
		}
		if err := h.validator.Validate(&req); err != nil {
			response.ValidationError(w, h.validator.FormatValidationErrors(err))
			return
		}
	}

	doctor, err := fn(r.Context(), adminID, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrVerificationDecided:
			response.Error(w, http.StatusConflict, "Verification has already been decided", nil)
		case usecase.ErrRejectionNeedsNotes:
			response.Error(w, http.StatusBadRequest, "Rejection requires review notes", nil)
		case usecase.ErrMissingAdminPrivilege:
			response.Forbidden(w, "Admin account lacks the required permission")
		default:
			response.InternalServerError(w, "Failed to update verification")
		}
		return
	}

	response.Success(w, http.StatusOK, successMessage, doctor)
}
