package request

type CreateBookingRequest struct {
	CourtID     string   `json:"court_id" validate:"required,uuid4"`
	BookingDate string   `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Slots       []string `json:"slots" validate:"required,min=1"`
	// TransactionReference may be supplied now or attached later via
	// the payment endpoint.
	TransactionReference *string `json:"transaction_reference,omitempty"`
}

type SubmitPaymentReferenceRequest struct {
	TransactionReference string `json:"transaction_reference" validate:"required,min=4,max=100"`
}

type VerifyBookingRequest struct {
	Action string `json:"action" validate:"required,oneof=approve deny"`
}
