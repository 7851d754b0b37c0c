package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Exists(ctx context.Context, speakerEmail string, day time.Time, slot int) (bool, error)
	ListForSpeakerBetween(ctx context.Context, speakerEmail string, from, to time.Time) ([]domain.Booking, error)
	ListForUser(ctx context.Context, userEmail string) ([]domain.Booking, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const uniqueViolation = "23505"

// Create inserts the booking row. The unique index on
// (speaker_email, session_date, slot_index) is the arbiter for concurrent
// attempts: a violation surfaces as domain.ErrSlotTaken.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (id, user_email, speaker_email, session_at, slot_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		booking.ID, booking.UserEmail, booking.SpeakerEmail, booking.SessionAt, booking.SlotIndex).
		Scan(&booking.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) Exists(ctx context.Context, speakerEmail string, day time.Time, slot int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(
		SELECT 1 FROM bookings WHERE speaker_email=$1 AND session_date=$2 AND slot_index=$3)`,
		speakerEmail, day.UTC(), slot).Scan(&exists)
	return exists, err
}

func (r *PGBookingRepository) ListForSpeakerBetween(ctx context.Context, speakerEmail string, from, to time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_email, speaker_email, session_at, slot_index, created_at
		FROM bookings
		WHERE speaker_email=$1 AND session_at >= $2 AND session_at <= $3
		ORDER BY session_at`, speakerEmail, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListForUser(ctx context.Context, userEmail string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_email, speaker_email, session_at, slot_index, created_at
		FROM bookings
		WHERE user_email=$1
		ORDER BY session_at`, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, user_email, speaker_email, session_at, slot_index, created_at
		FROM bookings
		WHERE session_at >= $1 AND session_at < $2
		ORDER BY session_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookings(rows rowScanner) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserEmail, &b.SpeakerEmail, &b.SessionAt, &b.SlotIndex, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.SessionAt = b.SessionAt.UTC()
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
