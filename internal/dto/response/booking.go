package response

import (
	"time"

	"court-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	ReferenceCode string               `json:"reference_code"`
	UserID        string               `json:"user_id"`
	CourtID       string               `json:"court_id"`
	CourtName     string               `json:"court_name,omitempty"`
	BookingDate   string               `json:"booking_date"`
	StartTime     string               `json:"start_time"`
	EndTime       string               `json:"end_time"`
	TotalAmount   float64              `json:"total_amount"`
	Status        entity.BookingStatus `json:"status"`
	ExpiresAt     time.Time            `json:"expires_at"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID                   string               `json:"id"`
	BookingID            string               `json:"booking_id"`
	Amount               float64              `json:"amount"`
	PaymentMethod        string               `json:"payment_method"`
	TransactionReference *string              `json:"transaction_reference,omitempty"`
	Status               entity.PaymentStatus `json:"status"`
	PaidAt               *time.Time           `json:"paid_at,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}

// ExpiredBookingsResponse lists what an expiry sweep reclaimed.
type ExpiredBookingsResponse struct {
	Cancelled int                  `json:"cancelled"`
	Bookings  []ExpiredBookingItem `json:"bookings"`
}

type ExpiredBookingItem struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"reference_code"`
}

// Helper converters
func BookingToResponse(booking *entity.Booking, court *entity.Court, payment *entity.Payment) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		ReferenceCode: booking.ReferenceCode,
		UserID:        booking.UserID.String(),
		CourtID:       booking.CourtID.String(),
		BookingDate:   booking.BookingDate.Format("2006-01-02"),
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status,
		ExpiresAt:     booking.ExpiresAt,
		CreatedAt:     booking.CreatedAt,
	}

	if court != nil {
		resp.CourtName = court.Name
	}
	if payment != nil {
		paymentResp := PaymentToResponse(payment)
		resp.Payment = &paymentResp
	}

	return resp
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   payment.ID.String(),
		BookingID:            payment.BookingID.String(),
		Amount:               payment.Amount,
		PaymentMethod:        payment.PaymentMethod,
		TransactionReference: payment.TransactionReference,
		Status:               payment.Status,
		PaidAt:               payment.PaidAt,
		CreatedAt:            payment.CreatedAt,
	}
}
