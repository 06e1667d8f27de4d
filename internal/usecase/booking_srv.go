package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/internal/notify"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	SubmitPaymentReference(ctx context.Context, userID, bookingID string, req *request.SubmitPaymentReferenceRequest) (*response.PaymentResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, userID, bookingID string, adminOverride bool) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	config   *utils.Config
	notifier notify.Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, notifier notify.Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		config:   config,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", ErrValidation, userID)
	}

	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid court ID %s", ErrValidation, req.CourtID)
	}

	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking date %s", ErrValidation, req.BookingDate)
	}
	// ISO dates compare lexicographically; formatting now() keeps the
	// guard on the server's local calendar day.
	if req.BookingDate < time.Now().Format("2006-01-02") {
		return nil, fmt.Errorf("%w: cannot book a past date", ErrValidation)
	}

	court, err := s.repo.Court.FindByID(ctx, courtID)
	if err != nil {
		s.log.Error("Failed to get court for booking", zap.Error(err), zap.String("court_id", req.CourtID))
		return nil, fmt.Errorf("get court %s: %w", req.CourtID, err)
	}
	if court == nil || !court.IsActive {
		return nil, fmt.Errorf("%w: court %s", ErrNotFound, req.CourtID)
	}

	// Parse slot labels and reject anything outside operating hours
	hours, err := utils.SlotHours(req.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	for _, hour := range hours {
		if hour < court.OpenHour || hour >= court.CloseHour {
			return nil, fmt.Errorf("%w: slot %s outside operating hours", ErrValidation, utils.SlotLabel(hour))
		}
	}

	// Bounds are derived from the sorted slot set: earliest slot opens
	// the interval, one hour past the latest closes it
	startTime, endTime, err := utils.SlotBounds(hours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	totalAmount := court.PricePerHour * float64(len(hours))
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: non-positive total amount", ErrValidation)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode: utils.GenerateReferenceCode(),
		UserID:        userUUID,
		CourtID:       court.ID,
		BookingDate:   bookingDate,
		StartTime:     startTime,
		EndTime:       endTime,
		TotalAmount:   totalAmount,
		Status:        entity.BookingStatusPending,
		ExpiresAt:     now.Add(time.Duration(s.config.Booking.HoldMinutes) * time.Minute),
	}

	// Atomic check-and-insert: a concurrent conflicting create loses
	// here instead of double-selling the slot
	created, err := s.repo.Booking.CreateIfAvailable(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !created {
		s.log.Warn("Booking conflict",
			zap.String("court_id", req.CourtID),
			zap.String("date", req.BookingDate),
			zap.String("start", startTime),
			zap.String("end", endTime),
		)
		return nil, fmt.Errorf("%w: selected slots are no longer available", ErrConflict)
	}

	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:            booking.ID,
		UserID:               userUUID,
		Amount:               totalAmount,
		PaymentMethod:        entity.PaymentMethodGCash,
		TransactionReference: req.TransactionReference,
		Status:               entity.PaymentStatusPending,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		// Release the hold rather than leave a booking without its
		// payment stub
		if _, cancelErr := s.repo.Booking.UpdateStatusIfCurrent(ctx, booking.ID, entity.BookingStatusPending, entity.BookingStatusCancelled); cancelErr != nil {
			s.log.Error("Failed to release booking after payment create failure",
				zap.Error(cancelErr), zap.String("booking_id", booking.ID.String()))
		}
		return nil, fmt.Errorf("create payment stub: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("user_id", userID),
		zap.String("court_id", court.ID.String()),
		zap.Int("slot_count", len(hours)),
		zap.Float64("total_amount", totalAmount),
		zap.Time("expires_at", booking.ExpiresAt),
	)

	notify.Dispatch(s.notifier, booking, notify.TypeConfirmation, s.log)

	resp := response.BookingToResponse(booking, court, payment)
	return &resp, nil
}

func (s *bookingService) SubmitPaymentReference(ctx context.Context, userID, bookingID string, req *request.SubmitPaymentReferenceRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit payment reference validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	booking, err := s.findOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("%w: booking is %s, reference can no longer be submitted", ErrConflict, booking.Status)
	}

	updated, err := s.repo.Payment.SetTransactionReference(ctx, booking.ID, req.TransactionReference)
	if err != nil {
		return nil, fmt.Errorf("set transaction reference: %w", err)
	}
	if !updated {
		// Payment already left pending under us
		return nil, fmt.Errorf("%w: payment already processed", ErrConflict)
	}

	payment, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err != nil || payment == nil {
		return nil, fmt.Errorf("reload payment for booking %s: %w", bookingID, err)
	}

	s.log.Info("Payment reference submitted",
		zap.String("booking_id", bookingID),
		zap.String("reference_code", booking.ReferenceCode),
	)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID %s", ErrValidation, userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		court, _ := s.repo.Court.FindByID(ctx, booking.CourtID)
		payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)
		responses[i] = response.BookingToResponse(booking, court, payment)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string, adminOverride bool) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}

	if !adminOverride && booking.UserID.String() != userID {
		return nil, fmt.Errorf("%w: not the booking owner", ErrForbidden)
	}

	court, _ := s.repo.Court.FindByID(ctx, booking.CourtID)
	payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)

	resp := response.BookingToResponse(booking, court, payment)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	booking, err := s.findOwnedBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}

	if !booking.Status.Blocking() {
		return fmt.Errorf("%w: booking is %s, cannot cancel", ErrConflict, booking.Status)
	}

	// Conditional on the status we just read; if the sweeper or an
	// admin got there first, zero rows means already handled
	priorStatus := booking.Status
	cancelled, err := s.repo.Booking.UpdateStatusIfCurrent(ctx, booking.ID, priorStatus, entity.BookingStatusCancelled)
	if err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	if !cancelled {
		return fmt.Errorf("%w: booking already transitioned", ErrConflict)
	}

	// An unverified payment dies with its booking. A completed payment
	// on a paid booking stays untouched: money moved, refunds are a
	// separate ledger concern.
	if priorStatus == entity.BookingStatusPending {
		if _, err := s.repo.Payment.UpdateStatusIfCurrent(ctx, booking.ID, entity.PaymentStatusPending, entity.PaymentStatusFailed, nil); err != nil {
			s.log.Error("Failed to fail payment after cancel",
				zap.Error(err), zap.String("booking_id", bookingID))
		}
	}

	s.log.Info("Booking cancelled by user",
		zap.String("booking_id", bookingID),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("prior_status", string(priorStatus)),
	)

	notify.Dispatch(s.notifier, booking, notify.TypeCancellation, s.log)

	return nil
}

func (s *bookingService) findOwnedBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking ID %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
	}
	if booking.UserID.String() != userID {
		return nil, fmt.Errorf("%w: not the booking owner", ErrForbidden)
	}

	return booking, nil
}
