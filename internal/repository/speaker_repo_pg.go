package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/speakerdesk/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SpeakerRepository is the speaker directory: who is bookable, what they
// charge and what they talk about.
type SpeakerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Speaker, error)
	List(ctx context.Context) ([]domain.Speaker, error)
	UpsertProfile(ctx context.Context, speaker *domain.Speaker) error
}

type PGSpeakerRepository struct {
	db *pgxpool.Pool
}

func NewSpeakerRepository(db *pgxpool.Pool) SpeakerRepository {
	return &PGSpeakerRepository{db: db}
}

func (r *PGSpeakerRepository) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	row := r.db.QueryRow(ctx, `SELECT u.email, u.name, p.expertise, p.price_per_hour_cents, p.created_at, p.updated_at
		FROM users u
		JOIN speaker_profiles p ON p.email = u.email
		WHERE u.email=$1 AND u.role='speaker'`, email)
	var s domain.Speaker
	if err := row.Scan(&s.Email, &s.Name, &s.Expertise, &s.PricePerHourCents, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidTarget
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGSpeakerRepository) List(ctx context.Context) ([]domain.Speaker, error) {
	rows, err := r.db.Query(ctx, `SELECT u.email, u.name, p.expertise, p.price_per_hour_cents, p.created_at, p.updated_at
		FROM users u
		JOIN speaker_profiles p ON p.email = u.email
		WHERE u.role='speaker'
		ORDER BY u.email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]domain.Speaker, 0)
	for rows.Next() {
		var s domain.Speaker
		if err := rows.Scan(&s.Email, &s.Name, &s.Expertise, &s.PricePerHourCents, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *PGSpeakerRepository) UpsertProfile(ctx context.Context, speaker *domain.Speaker) error {
	row := r.db.QueryRow(ctx, `INSERT INTO speaker_profiles (email, expertise, price_per_hour_cents)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET expertise=excluded.expertise, price_per_hour_cents=excluded.price_per_hour_cents, updated_at=now()
		RETURNING created_at, updated_at`,
		speaker.Email, speaker.Expertise, speaker.PricePerHourCents)
	return row.Scan(&speaker.CreatedAt, &speaker.UpdatedAt)
}

var _ SpeakerRepository = (*PGSpeakerRepository)(nil)
