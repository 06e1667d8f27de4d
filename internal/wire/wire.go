package wire

import (
	"context"
	"net/http"
	"time"

	"court-booking/internal/adaptor"
	"court-booking/internal/data/repository"
	"court-booking/internal/usecase"
	"court-booking/pkg/middleware"
	"court-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application surface.
type App struct {
	Router *chi.Mux

	// SweepExpired runs one expiry sweep. The scheduler calls it on an
	// interval; the admin expire endpoint triggers the same logic.
	SweepExpired func()
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := service.Admin.SweepExpired(ctx); err != nil {
			logger.Error("Scheduled expiry sweep failed", zap.Error(err))
		}
	}

	return &App{
		Router:       router,
		SweepExpired: sweep,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, repo, config, logger)
	wireCourt(r, handler.Court, handler.Availability, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireAdmin(r, handler.Admin, handler.Court, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
