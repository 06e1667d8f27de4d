package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubDB answers Exec with a canned result so repository error
// handling can be exercised without a database.
type stubDB struct {
	execTag pgconn.CommandTag
	execErr error
}

func (s *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.execTag, s.execErr
}

func (s *stubDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("not implemented")
}

func (s *stubDB) Ping(ctx context.Context) error { return nil }

func (s *stubDB) Close() {}

func sampleBooking() *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReferenceCode: "PB-20270615-4F2A9C01",
		UserID:        uuid.New(),
		CourtID:       uuid.New(),
		BookingDate:   time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     "09:00:00",
		EndTime:       "10:00:00",
		TotalAmount:   500,
		Status:        entity.BookingStatusPending,
		ExpiresAt:     now.Add(30 * time.Minute),
	}
}

func TestCreateIfAvailable(t *testing.T) {
	log := zap.NewNop()

	t.Run("insert lands", func(t *testing.T) {
		repo := repository.NewBookingRepository(&stubDB{execTag: pgconn.NewCommandTag("INSERT 0 1")}, log)

		created, err := repo.CreateIfAvailable(context.Background(), sampleBooking())

		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("no rows means slot taken", func(t *testing.T) {
		repo := repository.NewBookingRepository(&stubDB{execTag: pgconn.NewCommandTag("INSERT 0 0")}, log)

		created, err := repo.CreateIfAvailable(context.Background(), sampleBooking())

		require.NoError(t, err)
		assert.False(t, created)
	})

	// Two concurrent creates can both pass the NOT EXISTS check before
	// either commits. The loser then trips the bookings_no_overlap
	// constraint, which must surface as an unavailable slot rather
	// than a server error.
	t.Run("exclusion violation means slot taken", func(t *testing.T) {
		db := &stubDB{execErr: &pgconn.PgError{
			Code:           "23P01",
			ConstraintName: "bookings_no_overlap",
		}}
		repo := repository.NewBookingRepository(db, log)

		created, err := repo.CreateIfAvailable(context.Background(), sampleBooking())

		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		repo := repository.NewBookingRepository(&stubDB{execErr: errors.New("connection reset")}, log)

		created, err := repo.CreateIfAvailable(context.Background(), sampleBooking())

		require.Error(t, err)
		assert.False(t, created)
	})
}
