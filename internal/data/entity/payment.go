package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const PaymentMethodGCash = "gcash"

type Payment struct {
	Base
	BookingID            uuid.UUID     `db:"booking_id"`
	UserID               uuid.UUID     `db:"user_id"`
	Amount               float64       `db:"amount"`
	PaymentMethod        string        `db:"payment_method"`
	TransactionReference *string       `db:"transaction_reference"`
	Status               PaymentStatus `db:"status"`
	PaidAt               *time.Time    `db:"paid_at"`
}
