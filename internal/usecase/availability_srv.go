package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/repository"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService computes which hourly slots are free for a court
// on a date. A slot is taken while any pending or paid booking overlaps
// it; cancelled and completed bookings do not block.
type AvailabilityService interface {
	GetAvailability(ctx context.Context, courtID, dateStr string) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, courtID, dateStr string) (*response.AvailabilityResponse, error) {
	// Nothing selected yet is not an error; the client renders an
	// empty slot list.
	if courtID == "" || dateStr == "" {
		return &response.AvailabilityResponse{Slots: []response.SlotResponse{}}, nil
	}

	courtUUID, err := uuid.Parse(courtID)
	if err != nil {
		return &response.AvailabilityResponse{Slots: []response.SlotResponse{}}, nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return &response.AvailabilityResponse{Slots: []response.SlotResponse{}}, nil
	}

	court, err := s.repo.Court.FindByID(ctx, courtUUID)
	if err != nil {
		s.log.Error("Failed to get court for availability",
			zap.Error(err),
			zap.String("court_id", courtID),
		)
		return nil, fmt.Errorf("get court %s: %w", courtID, err)
	}
	if court == nil || !court.IsActive {
		return &response.AvailabilityResponse{Slots: []response.SlotResponse{}}, nil
	}

	blocking, err := s.repo.Booking.FindBlockingByCourtAndDate(ctx, court.ID, date)
	if err != nil {
		s.log.Error("Failed to get blocking bookings",
			zap.Error(err),
			zap.String("court_id", courtID),
			zap.String("date", dateStr),
		)
		return nil, fmt.Errorf("get blocking bookings: %w", err)
	}

	hours := court.SlotHours()
	slots := make([]response.SlotResponse, len(hours))
	taken := 0
	for i, hour := range hours {
		slotStart := utils.TimeOfDay(hour)
		slotEnd := utils.TimeOfDay(hour + 1)

		available := true
		for _, booking := range blocking {
			// Text comparison is safe: times are zero-padded HH:MM:SS
			if booking.StartTime < slotEnd && booking.EndTime > slotStart {
				available = false
				taken++
				break
			}
		}

		slots[i] = response.SlotResponse{
			Label:     utils.SlotLabel(hour),
			StartTime: slotStart,
			EndTime:   slotEnd,
			Available: available,
		}
	}

	s.log.Info("Availability computed",
		zap.String("court_id", courtID),
		zap.String("date", dateStr),
		zap.Int("slots", len(slots)),
		zap.Int("taken", taken),
	)

	return &response.AvailabilityResponse{
		CourtID: court.ID.String(),
		Date:    date.Format("2006-01-02"),
		Slots:   slots,
	}, nil
}
