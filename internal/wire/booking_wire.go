package wire

import (
	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", bookingHandler.Create)
		r.Get("/", bookingHandler.List)
		r.Get("/{id}", bookingHandler.Get)
		r.Post("/{id}/payment", bookingHandler.SubmitPayment)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
	})
}
