package wire

import (
	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCourt(
	r chi.Router,
	courtHandler *adaptor.CourtHandler,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public routes, anyone can browse courts and check open slots
	r.Get("/api/courts", courtHandler.List)
	r.Get("/api/courts/{id}", courtHandler.Get)
	r.Get("/api/courts/{id}/availability", availabilityHandler.Get)
}
