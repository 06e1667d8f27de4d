package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the SQL semantics the real
// repositories implement, including the conditional transitions.

type fakeStore struct {
	mu       sync.Mutex
	courts   map[uuid.UUID]*entity.Court
	bookings map[uuid.UUID]*entity.Booking
	payments map[uuid.UUID]*entity.Payment
	users    map[uuid.UUID]*entity.User
	sessions map[uuid.UUID]*entity.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		courts:   make(map[uuid.UUID]*entity.Court),
		bookings: make(map[uuid.UUID]*entity.Booking),
		payments: make(map[uuid.UUID]*entity.Payment),
		users:    make(map[uuid.UUID]*entity.User),
		sessions: make(map[uuid.UUID]*entity.Session),
	}
}

func (s *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		User:    &fakeUserRepo{s},
		Session: &fakeSessionRepo{s},
		Court:   &fakeCourtRepo{s},
		Booking: &fakeBookingRepo{s},
		Payment: &fakePaymentRepo{s},
	}
}

func (s *fakeStore) addCourt(court *entity.Court) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courts[court.ID] = court
}

func (s *fakeStore) addBooking(booking *entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.ID] = booking
}

func (s *fakeStore) addPayment(payment *entity.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[payment.ID] = payment
}

func (s *fakeStore) paymentForBooking(bookingID uuid.UUID) *entity.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.BookingID == bookingID {
			return p
		}
	}
	return nil
}

type fakeCourtRepo struct{ s *fakeStore }

func (r *fakeCourtRepo) Create(_ context.Context, court *entity.Court) error {
	r.s.addCourt(court)
	return nil
}

func (r *fakeCourtRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.courts[id], nil
}

func (r *fakeCourtRepo) FindAll(_ context.Context, activeOnly bool) ([]*entity.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Court
	for _, c := range r.s.courts {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourtRepo) Update(_ context.Context, court *entity.Court) error {
	r.s.addCourt(court)
	return nil
}

func (r *fakeCourtRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.courts[id]; ok {
		c.IsActive = false
	}
	return nil
}

type fakeBookingRepo struct{ s *fakeStore }

func overlaps(a *entity.Booking, courtID uuid.UUID, date time.Time, start, end string) bool {
	return a.CourtID == courtID &&
		a.BookingDate.Equal(date) &&
		a.Status.Blocking() &&
		a.StartTime < end && a.EndTime > start
}

func (r *fakeBookingRepo) CreateIfAvailable(_ context.Context, booking *entity.Booking) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if overlaps(b, booking.CourtID, booking.BookingDate, booking.StartTime, booking.EndTime) {
			return false, nil
		}
	}
	r.s.bookings[booking.ID] = booking
	return true, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	bookings, _ := r.FindByUserID(context.Background(), userID, 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountAll(_ context.Context) (int64, error) {
	bookings, _ := r.FindAll(context.Background(), 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) FindBlockingByCourtAndDate(_ context.Context, courtID uuid.UUID, date time.Time) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.CourtID == courtID && b.BookingDate.Equal(date) && b.Status.Blocking() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusIfCurrent(_ context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) Verify(_ context.Context, id uuid.UUID, approve bool, paidAt time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}

	var payment *entity.Payment
	for _, p := range r.s.payments {
		if p.BookingID == id {
			payment = p
			break
		}
	}
	if payment == nil || payment.Status != entity.PaymentStatusPending {
		return false, errors.New("no pending payment for booking")
	}

	if approve {
		b.Status = entity.BookingStatusPaid
		payment.Status = entity.PaymentStatusCompleted
		payment.PaidAt = &paidAt
	} else {
		b.Status = entity.BookingStatusCancelled
		payment.Status = entity.PaymentStatusFailed
	}
	return true, nil
}

func (r *fakeBookingRepo) CancelExpired(_ context.Context, now time.Time) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cancelled []*entity.Booking
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusPending && b.ExpiresAt.Before(now) {
			b.Status = entity.BookingStatusCancelled
			cancelled = append(cancelled, b)
			for _, p := range r.s.payments {
				if p.BookingID == b.ID && p.Status == entity.PaymentStatusPending {
					p.Status = entity.PaymentStatusFailed
				}
			}
		}
	}
	return cancelled, nil
}

type fakePaymentRepo struct{ s *fakeStore }

func (r *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	r.s.addPayment(payment)
	return nil
}

func (r *fakePaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	return r.s.paymentForBooking(bookingID), nil
}

func (r *fakePaymentRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePaymentRepo) CountAll(_ context.Context) (int64, error) {
	payments, _ := r.FindAll(context.Background(), 0, 0)
	return int64(len(payments)), nil
}

func (r *fakePaymentRepo) SetTransactionReference(_ context.Context, bookingID uuid.UUID, reference string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.BookingID == bookingID && p.Status == entity.PaymentStatusPending {
			p.TransactionReference = &reference
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) UpdateStatusIfCurrent(_ context.Context, bookingID uuid.UUID, from, to entity.PaymentStatus, paidAt *time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.BookingID == bookingID && p.Status == from {
			p.Status = to
			if paidAt != nil {
				p.PaidAt = paidAt
			}
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), nil
}

type fakeSessionRepo struct{ s *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sess := range r.s.sessions {
		if sess.Token.String() == token && sess.RevokedAt == nil && sess.ExpiresAt.After(time.Now()) {
			return sess, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.Token.String() == token {
			sess.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.UserID == userID {
			sess.RevokedAt = &now
		}
	}
	return nil
}

// noopNotifier satisfies notify.Notifier without doing anything.
type noopNotifier struct{}

func (noopNotifier) Notify(_ context.Context, _ *entity.Booking, _ notify.Type) error {
	return nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
