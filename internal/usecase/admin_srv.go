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

type AdminService interface {
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	VerifyBooking(ctx context.Context, bookingID string, req *request.VerifyBookingRequest) (*response.BookingResponse, error)
	CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	SweepExpired(ctx context.Context) (*response.ExpiredBookingsResponse, error)
}

type adminService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewAdminService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) AdminService {
	return &adminService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		court, _ := s.repo.Court.FindByID(ctx, booking.CourtID)
		payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)
		responses[i] = response.BookingToResponse(booking, court, payment)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *adminService) ListPayments(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	payments, err := s.repo.Payment.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("list payments: %w", err)
	}

	total, err := s.repo.Payment.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count payments", zap.Error(err))
		return nil, fmt.Errorf("count payments: %w", err)
	}

	responses := make([]response.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = response.PaymentToResponse(payment)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *adminService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.repo.User.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	responses := make([]response.UserResponse, len(users))
	for i, user := range users {
		responses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(responses, req.Page, req.PerPage, total), nil
}

func (s *adminService) VerifyBooking(ctx context.Context, bookingID string, req *request.VerifyBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

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

	approve := req.Action == "approve"
	verified, err := s.repo.Booking.Verify(ctx, id, approve, time.Now())
	if err != nil {
		return nil, fmt.Errorf("verify booking %s: %w", bookingID, err)
	}
	if !verified {
		// Expired under the sweeper, cancelled by the user, or verified
		// by another admin since we read it
		return nil, fmt.Errorf("%w: booking is no longer pending", ErrConflict)
	}

	s.log.Info("Booking verified",
		zap.String("booking_id", bookingID),
		zap.String("reference_code", booking.ReferenceCode),
		zap.String("action", req.Action),
	)

	if !approve {
		notify.Dispatch(s.notifier, booking, notify.TypeCancellation, s.log)
	}

	return s.reload(ctx, id)
}

func (s *adminService) CompleteBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
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

	completed, err := s.repo.Booking.UpdateStatusIfCurrent(ctx, id, entity.BookingStatusPaid, entity.BookingStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("complete booking %s: %w", bookingID, err)
	}
	if !completed {
		return nil, fmt.Errorf("%w: only paid bookings can be completed", ErrConflict)
	}

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.String("reference_code", booking.ReferenceCode),
	)

	return s.reload(ctx, id)
}

func (s *adminService) SweepExpired(ctx context.Context) (*response.ExpiredBookingsResponse, error) {
	expired, err := s.repo.Booking.CancelExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("Expiry sweep failed", zap.Error(err))
		return nil, fmt.Errorf("sweep expired bookings: %w", err)
	}

	items := make([]response.ExpiredBookingItem, len(expired))
	for i, booking := range expired {
		items[i] = response.ExpiredBookingItem{
			ID:            booking.ID.String(),
			ReferenceCode: booking.ReferenceCode,
		}
		notify.Dispatch(s.notifier, booking, notify.TypeCancellation, s.log)
	}

	if len(expired) > 0 {
		s.log.Info("Expiry sweep reclaimed bookings", zap.Int("cancelled", len(expired)))
	}

	return &response.ExpiredBookingsResponse{
		Cancelled: len(expired),
		Bookings:  items,
	}, nil
}

func (s *adminService) reload(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("reload booking %s: %w", id, err)
	}

	court, _ := s.repo.Court.FindByID(ctx, booking.CourtID)
	payment, _ := s.repo.Payment.FindByBookingID(ctx, booking.ID)

	resp := response.BookingToResponse(booking, court, payment)
	return &resp, nil
}
