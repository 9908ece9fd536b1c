// Package postgres is the repo backing over a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

// NewClient wraps the pool in the three stores. Closing the client closes the pool.
func NewClient(pool *pgxpool.Pool) *repo.Client {
	return repo.NewClient(
		NewSlotStore(pool),
		NewUserStore(pool),
		NewFAQStore(pool),
		func() error {
			pool.Close()
			return nil
		},
	)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS booking_slots (
		id            TEXT PRIMARY KEY,
		position      BIGSERIAL,
		date          TEXT NOT NULL DEFAULT '',
		time          TEXT NOT NULL DEFAULT '',
		is_available  BOOLEAN NOT NULL DEFAULT TRUE,
		status        TEXT NOT NULL DEFAULT 'available',
		trial_name    TEXT NOT NULL DEFAULT '',
		contact_info  TEXT NOT NULL DEFAULT '',
		patient_name  TEXT NOT NULL DEFAULT '',
		patient_email TEXT NOT NULL DEFAULT '',
		patient_phone TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id                  TEXT PRIMARY KEY,
		position            BIGSERIAL,
		name                TEXT NOT NULL,
		email               TEXT NOT NULL,
		phone               TEXT NOT NULL DEFAULT '',
		role                TEXT NOT NULL DEFAULT 'participant',
		last_active         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		trials_participated INTEGER NOT NULL DEFAULT 0,
		bookings            TEXT[] NOT NULL DEFAULT '{}'
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (lower(email))`,

	`CREATE TABLE IF NOT EXISTS chat_entries (
		seq       BIGSERIAL PRIMARY KEY,
		id        TEXT NOT NULL UNIQUE,
		user_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		question  TEXT NOT NULL,
		answer    TEXT NOT NULL,
		asked_at  TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS chat_entries_user_idx ON chat_entries (user_id, seq)`,

	`CREATE TABLE IF NOT EXISTS faqs (
		id        TEXT PRIMARY KEY,
		position  BIGSERIAL,
		question  TEXT NOT NULL,
		answer    TEXT NOT NULL,
		category  TEXT NOT NULL DEFAULT '',
		frequency INTEGER NOT NULL DEFAULT 0
	)`,
}

// Migrate creates the tables and indexes. It is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		return nil
	})
}

// Seed loads the demo data. Rows that already exist are left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, now time.Time) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, s := range repo.SeedSlots() {
			if _, err := tx.Exec(ctx, `
				INSERT INTO booking_slots (id, date, time, is_available, status, trial_name, contact_info, patient_name, patient_email, patient_phone)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				ON CONFLICT (id) DO NOTHING`,
				s.ID, s.Date, s.Time, s.IsAvailable, string(s.Status), s.TrialName, s.ContactInfo,
				s.PatientName, s.PatientEmail, s.PatientPhone,
			); err != nil {
				return fmt.Errorf("seed slot %s: %w", s.ID, err)
			}
		}

		for _, u := range repo.SeedUsers(now) {
			tag, err := tx.Exec(ctx, `
				INSERT INTO users (id, name, email, phone, role, last_active, trials_participated, bookings)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT DO NOTHING`,
				u.ID, u.Name, u.Email, u.Phone, u.Role, u.LastActive, u.TrialsParticipated, u.Bookings,
			)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
			if tag.RowsAffected() == 0 {
				continue
			}
			for _, c := range u.ChatHistory {
				if _, err := tx.Exec(ctx, `
					INSERT INTO chat_entries (id, user_id, question, answer, asked_at)
					VALUES ($1, $2, $3, $4, $5)
					ON CONFLICT (id) DO NOTHING`,
					c.ID, u.ID, c.Question, c.Answer, c.Timestamp,
				); err != nil {
					return fmt.Errorf("seed chat %s: %w", c.ID, err)
				}
			}
		}

		for _, f := range repo.SeedFAQs() {
			if _, err := tx.Exec(ctx, `
				INSERT INTO faqs (id, question, answer, category, frequency)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO NOTHING`,
				f.ID, f.Question, f.Answer, f.Category, f.Frequency,
			); err != nil {
				return fmt.Errorf("seed faq %s: %w", f.ID, err)
			}
		}
		return nil
	})
}
