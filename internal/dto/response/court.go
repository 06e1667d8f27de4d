package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type CourtResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	PricePerHour float64   `json:"price_per_hour"`
	OpenHour     int       `json:"open_hour"`
	CloseHour    int       `json:"close_hour"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func CourtToResponse(court *entity.Court) CourtResponse {
	return CourtResponse{
		ID:           court.ID.String(),
		Name:         court.Name,
		Description:  court.Description,
		PricePerHour: court.PricePerHour,
		OpenHour:     court.OpenHour,
		CloseHour:    court.CloseHour,
		IsActive:     court.IsActive,
		CreatedAt:    court.CreatedAt,
	}
}
