package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateIfAvailable inserts the booking only if no pending or paid
	// booking overlaps it on the same court and date. Returns false
	// when the insert lost to an existing blocking booking.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)

	// FindBlockingByCourtAndDate returns the bookings occupying slots
	// for the court on the date, i.e. those in status pending or paid.
	FindBlockingByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error)

	// UpdateStatusIfCurrent transitions a booking's status only if it
	// still holds the expected current status. Returns false when the
	// conditional update affected no rows (the transition already
	// happened elsewhere or the booking does not exist).
	UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)

	// Verify applies the admin verification transition to a pending
	// booking and its payment in one transaction. Approve moves the
	// pair to paid/completed with paid_at set; deny to cancelled/failed.
	// Returns false when the booking was no longer pending.
	Verify(ctx context.Context, id uuid.UUID, approve bool, paidAt time.Time) (bool, error)

	// CancelExpired cancels every booking still pending past its expiry
	// and fails the linked pending payments. The status and expiry
	// checks are one atomic statement so the sweep can never race a
	// concurrent approval. Returns the affected bookings (id and
	// reference code only).
	CancelExpired(ctx context.Context, now time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference_code, user_id, court_id, booking_date, start_time, end_time, total_amount, status, expires_at, created_at, updated_at`

// Raised by the bookings_no_overlap exclusion constraint when two
// concurrent creates collide on the same slots.
const sqlstateExclusionViolation = "23P01"

func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) (bool, error) {
	// The NOT EXISTS check rejects most conflicts up front, but under
	// READ COMMITTED two in-flight inserts can each miss the other's
	// uncommitted row. The bookings_no_overlap exclusion constraint is
	// the real arbiter; its violation is reported as a lost race, not
	// an error.
	query := `
		INSERT INTO bookings (id, reference_code, user_id, court_id, booking_date,
		                      start_time, end_time, total_amount, status, expires_at,
		                      created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $4
			  AND booking_date = $5
			  AND status IN ('pending', 'paid')
			  AND start_time < $7
			  AND end_time > $6
		)
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ReferenceCode,
		booking.UserID,
		booking.CourtID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.TotalAmount,
		booking.Status,
		booking.ExpiresAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == sqlstateExclusionViolation {
			r.log.Info("Booking lost overlap race",
				zap.String("reference_code", booking.ReferenceCode),
				zap.String("court_id", booking.CourtID.String()),
			)
			return false, nil
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference_code", booking.ReferenceCode),
			zap.String("court_id", booking.CourtID.String()),
		)
		return false, fmt.Errorf("create booking %s: %w", booking.ReferenceCode, err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ReferenceCode,
		&booking.UserID,
		&booking.CourtID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.TotalAmount,
		&booking.Status,
		&booking.ExpiresAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindBlockingByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1
		  AND booking_date = $2
		  AND status IN ('pending', 'paid')
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, courtID, date)
	if err != nil {
		r.log.Error("Failed to find blocking bookings",
			zap.Error(err),
			zap.String("court_id", courtID.String()),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find blocking bookings for court %s: %w", courtID.String(), err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func (r *bookingRepository) UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status to %s: %w", id.String(), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) Verify(ctx context.Context, id uuid.UUID, approve bool, paidAt time.Time) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin verification tx: %w", err)
	}
	defer tx.Rollback(ctx)

	bookingStatus := entity.BookingStatusPaid
	if !approve {
		bookingStatus = entity.BookingStatusCancelled
	}

	result, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id, bookingStatus)
	if err != nil {
		return false, fmt.Errorf("verify booking %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		// Already handled by another transition; nothing to commit.
		return false, nil
	}

	if approve {
		result, err = tx.Exec(ctx, `
			UPDATE payments
			SET status = 'completed', paid_at = $2, updated_at = NOW()
			WHERE booking_id = $1 AND status = 'pending'
		`, id, paidAt)
	} else {
		result, err = tx.Exec(ctx, `
			UPDATE payments
			SET status = 'failed', updated_at = NOW()
			WHERE booking_id = $1 AND status = 'pending'
		`, id)
	}
	if err != nil {
		return false, fmt.Errorf("verify payment for booking %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		// A paid booking with an unpaired payment would violate the
		// invariant, so the whole transition is rolled back for retry.
		return false, fmt.Errorf("no pending payment for booking %s", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit verification for booking %s: %w", id.String(), err)
	}

	return true, nil
}

func (r *bookingRepository) CancelExpired(ctx context.Context, now time.Time) ([]*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin expiry sweep tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Status and expiry are checked in the same statement; a booking
	// approved between sweeps can never be clawed back to cancelled.
	rows, err := tx.Query(ctx, `
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE status = 'pending' AND expires_at < $1
		RETURNING id, reference_code
	`, now)
	if err != nil {
		r.log.Error("Failed to cancel expired bookings", zap.Error(err))
		return nil, fmt.Errorf("cancel expired bookings: %w", err)
	}

	var expired []*entity.Booking
	ids := []uuid.UUID{}
	for rows.Next() {
		var booking entity.Booking
		if err := rows.Scan(&booking.ID, &booking.ReferenceCode); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan expired booking row: %w", err)
		}
		expired = append(expired, &booking)
		ids = append(ids, booking.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read expired booking rows: %w", err)
	}

	if len(ids) > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE payments
			SET status = 'failed', updated_at = NOW()
			WHERE booking_id = ANY($1) AND status = 'pending'
		`, ids)
		if err != nil {
			return nil, fmt.Errorf("fail payments for expired bookings: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit expiry sweep: %w", err)
	}

	return expired, nil
}

func (r *bookingRepository) scanRows(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.ReferenceCode,
			&booking.UserID,
			&booking.CourtID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.EndTime,
			&booking.TotalAmount,
			&booking.Status,
			&booking.ExpiresAt,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}
