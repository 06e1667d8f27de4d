package response

type SlotResponse struct {
	Label     string `json:"label"` // e.g. "09:00 AM"
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	CourtID string         `json:"court_id,omitempty"`
	Date    string         `json:"date,omitempty"`
	Slots   []SlotResponse `json:"slots"`
}
