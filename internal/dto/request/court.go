package request

type CourtRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Description  *string `json:"description,omitempty"`
	PricePerHour float64 `json:"price_per_hour" validate:"required,gt=0"`
	OpenHour     int     `json:"open_hour" validate:"min=0,max=23"`
	CloseHour    int     `json:"close_hour" validate:"min=1,max=24,gtfield=OpenHour"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
