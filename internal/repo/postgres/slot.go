package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

const slotColumns = `id, date, time, is_available, status, trial_name, contact_info, patient_name, patient_email, patient_phone`

type SlotStore struct {
	pool *pgxpool.Pool
}

var _ repo.SlotStore = (*SlotStore)(nil)

func NewSlotStore(pool *pgxpool.Pool) *SlotStore {
	return &SlotStore{pool: pool}
}

func scanSlot(row pgx.Row) (*repo.BookingSlot, error) {
	var (
		s      repo.BookingSlot
		status string
	)
	err := row.Scan(&s.ID, &s.Date, &s.Time, &s.IsAvailable, &status, &s.TrialName, &s.ContactInfo,
		&s.PatientName, &s.PatientEmail, &s.PatientPhone)
	if err != nil {
		return nil, err
	}
	s.Status = repo.SlotStatus(status)
	return &s, nil
}

func (s *SlotStore) query(ctx context.Context, sql string, args ...any) ([]repo.BookingSlot, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []repo.BookingSlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *slot)
	}
	return out, rows.Err()
}

func (s *SlotStore) List(ctx context.Context) ([]repo.BookingSlot, error) {
	return s.query(ctx, `SELECT `+slotColumns+` FROM booking_slots ORDER BY position`)
}

func (s *SlotStore) Available(ctx context.Context) ([]repo.BookingSlot, error) {
	return s.query(ctx, `SELECT `+slotColumns+` FROM booking_slots WHERE is_available ORDER BY position`)
}

func (s *SlotStore) Get(ctx context.Context, id string) (*repo.BookingSlot, error) {
	slot, err := scanSlot(s.pool.QueryRow(ctx, `SELECT `+slotColumns+` FROM booking_slots WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrSlotNotFound
	}
	return slot, err
}

func (s *SlotStore) Create(ctx context.Context, ns repo.NewSlot) (*repo.BookingSlot, error) {
	status, available := repo.NormalizeStatus(ns.Status)
	return scanSlot(s.pool.QueryRow(ctx, `
		INSERT INTO booking_slots (id, date, time, is_available, status, trial_name, contact_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+slotColumns,
		uuid.NewString(), ns.Date, ns.Time, available, string(status), ns.TrialName, ns.ContactInfo,
	))
}

func (s *SlotStore) UpdateDetails(ctx context.Context, id string, d repo.SlotDetails) (*repo.BookingSlot, error) {
	slot, err := scanSlot(s.pool.QueryRow(ctx, `
		UPDATE booking_slots SET
			date         = COALESCE(NULLIF($2, ''), date),
			time         = COALESCE(NULLIF($3, ''), time),
			trial_name   = COALESCE(NULLIF($4, ''), trial_name),
			contact_info = COALESCE(NULLIF($5, ''), contact_info)
		WHERE id = $1
		RETURNING `+slotColumns,
		id, d.Date, d.Time, d.TrialName, d.ContactInfo,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrSlotNotFound
	}
	return slot, err
}

// Book flips availability with a single conditional UPDATE, so concurrent
// callers race on the row lock and exactly one sees a returned row.
func (s *SlotStore) Book(ctx context.Context, id string, p repo.Patient) (*repo.BookingSlot, error) {
	slot, err := scanSlot(s.pool.QueryRow(ctx, `
		UPDATE booking_slots SET
			is_available  = FALSE,
			status        = 'booked',
			patient_name  = $2,
			patient_email = $3,
			patient_phone = $4
		WHERE id = $1 AND is_available
		RETURNING `+slotColumns,
		id, p.Name, p.Email, p.Phone,
	))
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM booking_slots WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, repo.ErrSlotNotFound
	}
	return nil, repo.ErrSlotNotAvailable
}
