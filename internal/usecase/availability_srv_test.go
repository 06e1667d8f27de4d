package usecase_test

import (
	"context"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourt(openHour, closeHour int) *entity.Court {
	return &entity.Court{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Court A",
		PricePerHour: 500,
		OpenHour:     openHour,
		CloseHour:    closeHour,
		IsActive:     true,
	}
}

func newTestBooking(courtID uuid.UUID, date time.Time, start, end string, status entity.BookingStatus) *entity.Booking {
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ReferenceCode: "PB-20260901-7C41E20A",
		UserID:        uuid.New(),
		CourtID:       courtID,
		BookingDate:   date,
		StartTime:     start,
		EndTime:       end,
		TotalAmount:   500,
		Status:        status,
		ExpiresAt:     time.Now().Add(30 * time.Minute),
	}
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	t.Run("marks booked slots unavailable", func(t *testing.T) {
		store := newFakeStore()
		court := newTestCourt(9, 12)
		store.addCourt(court)
		store.addBooking(newTestBooking(court.ID, date, "10:00:00", "11:00:00", entity.BookingStatusPaid))

		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, court.ID.String(), "2026-09-01")
		require.NoError(t, err)
		require.Len(t, result.Slots, 3)

		assert.Equal(t, "09:00 AM", result.Slots[0].Label)
		assert.True(t, result.Slots[0].Available)
		assert.Equal(t, "10:00 AM", result.Slots[1].Label)
		assert.False(t, result.Slots[1].Available)
		assert.Equal(t, "11:00 AM", result.Slots[2].Label)
		assert.True(t, result.Slots[2].Available)
	})

	t.Run("multi hour booking blocks every covered slot", func(t *testing.T) {
		store := newFakeStore()
		court := newTestCourt(9, 13)
		store.addCourt(court)
		store.addBooking(newTestBooking(court.ID, date, "09:00:00", "12:00:00", entity.BookingStatusPending))

		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, court.ID.String(), "2026-09-01")
		require.NoError(t, err)
		require.Len(t, result.Slots, 4)

		assert.False(t, result.Slots[0].Available)
		assert.False(t, result.Slots[1].Available)
		assert.False(t, result.Slots[2].Available)
		assert.True(t, result.Slots[3].Available)
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		store := newFakeStore()
		court := newTestCourt(9, 11)
		store.addCourt(court)
		store.addBooking(newTestBooking(court.ID, date, "09:00:00", "10:00:00", entity.BookingStatusCancelled))
		store.addBooking(newTestBooking(court.ID, date, "10:00:00", "11:00:00", entity.BookingStatusCompleted))

		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, court.ID.String(), "2026-09-01")
		require.NoError(t, err)
		for _, slot := range result.Slots {
			assert.True(t, slot.Available, slot.Label)
		}
	})

	t.Run("unknown court yields empty slots without error", func(t *testing.T) {
		store := newFakeStore()
		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, uuid.NewString(), "2026-09-01")
		require.NoError(t, err)
		assert.Empty(t, result.Slots)
	})

	t.Run("inactive court yields empty slots", func(t *testing.T) {
		store := newFakeStore()
		court := newTestCourt(9, 12)
		court.IsActive = false
		store.addCourt(court)

		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, court.ID.String(), "2026-09-01")
		require.NoError(t, err)
		assert.Empty(t, result.Slots)
	})

	t.Run("malformed inputs yield empty slots without error", func(t *testing.T) {
		store := newFakeStore()
		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		for _, args := range [][2]string{
			{"", "2026-09-01"},
			{"not-a-uuid", "2026-09-01"},
			{uuid.NewString(), ""},
			{uuid.NewString(), "01-09-2026"},
		} {
			result, err := svc.GetAvailability(ctx, args[0], args[1])
			require.NoError(t, err)
			assert.Empty(t, result.Slots)
		}
	})

	t.Run("bookings on another date do not block", func(t *testing.T) {
		store := newFakeStore()
		court := newTestCourt(9, 11)
		store.addCourt(court)
		otherDate := date.AddDate(0, 0, 1)
		store.addBooking(newTestBooking(court.ID, otherDate, "09:00:00", "11:00:00", entity.BookingStatusPaid))

		svc := usecase.NewAvailabilityService(store.repo(), testLogger())

		result, err := svc.GetAvailability(ctx, court.ID.String(), "2026-09-01")
		require.NoError(t, err)
		for _, slot := range result.Slots {
			assert.True(t, slot.Available, slot.Label)
		}
	})
}
