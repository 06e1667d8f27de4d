package usecase

import (
	"court-booking/internal/data/repository"
	"court-booking/internal/notify"
	"court-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Court        CourtService
	Availability AvailabilityService
	Booking      BookingService
	Admin        AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	notifier := notify.New(config.Notification, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Court:        NewCourtService(repo, log),
		Availability: NewAvailabilityService(repo, log),
		Booking:      NewBookingService(repo, config, notifier, log),
		Admin:        NewAdminService(repo, notifier, log),
	}
}
