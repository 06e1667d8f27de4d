package adaptor

import (
	"net/http"

	"court-booking/internal/usecase"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// Get handles GET /api/courts/{id}/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	courtID := chi.URLParam(r, "id")
	date := r.URL.Query().Get("date")

	availability, err := h.service.GetAvailability(r.Context(), courtID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}
