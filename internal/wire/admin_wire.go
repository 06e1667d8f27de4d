package wire

import (
	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	courtHandler *adaptor.CourtHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		// The expire endpoint also accepts the service token so the
		// sweep can be triggered without an admin session
		r.With(middleware.SweeperAuth(config.Booking.SweeperToken, repo.Session, repo.User, log)).
			Post("/bookings/expire", adminHandler.Expire)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthSession(repo.Session, repo.User, log))
			r.Use(middleware.Admin(repo.User, log))

			r.Get("/bookings", adminHandler.ListBookings)
			r.Get("/payments", adminHandler.ListPayments)
			r.Get("/users", adminHandler.ListUsers)
			r.Post("/bookings/{id}/verify", adminHandler.Verify)
			r.Post("/bookings/{id}/complete", adminHandler.Complete)

			r.Get("/courts", courtHandler.ListAll)
			r.Post("/courts", courtHandler.Create)
			r.Put("/courts/{id}", courtHandler.Update)
			r.Delete("/courts/{id}", courtHandler.Deactivate)
		})
	})
}
