package adaptor

import (
	"encoding/json"
	"net/http"

	"court-booking/internal/dto/request"
	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CourtHandler struct {
	service usecase.CourtService
	log     *zap.Logger
}

func NewCourtHandler(service usecase.CourtService, log *zap.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		log:     log,
	}
}

// List handles GET /api/courts
func (h *CourtHandler) List(w http.ResponseWriter, r *http.Request) {
	courts, err := h.service.ListCourts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "Courts retrieved successfully", courts)
}

// Get handles GET /api/courts/{id}
func (h *CourtHandler) Get(w http.ResponseWriter, r *http.Request) {
	court, err := h.service.GetCourt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get court")
		return
	}

	utils.ResponseSuccess(w, "Court retrieved successfully", court)
}

// ListAll handles GET /api/admin/courts
func (h *CourtHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	courts, err := h.service.ListAllCourts(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list courts")
		return
	}

	utils.ResponseSuccess(w, "Courts retrieved successfully", courts)
}

// Create handles POST /api/admin/courts
func (h *CourtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CourtRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	court, err := h.service.CreateCourt(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create court")
		return
	}

	utils.ResponseCreated(w, "Court created successfully", court)
}

// Update handles PUT /api/admin/courts/{id}
func (h *CourtHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.CourtRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	court, err := h.service.UpdateCourt(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update court")
		return
	}

	utils.ResponseSuccess(w, "Court updated successfully", court)
}

// Deactivate handles DELETE /api/admin/courts/{id}
func (h *CourtHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeactivateCourt(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "deactivate court")
		return
	}

	utils.ResponseSuccess(w, "Court deactivated successfully", nil)
}
