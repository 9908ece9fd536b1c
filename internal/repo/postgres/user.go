package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

const userColumns = `id, name, email, phone, role, last_active, trials_participated, bookings`

type UserStore struct {
	pool *pgxpool.Pool
}

var _ repo.UserStore = (*UserStore)(nil)

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func scanUser(row pgx.Row) (*repo.User, error) {
	var u repo.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.LastActive, &u.TrialsParticipated, &u.Bookings); err != nil {
		return nil, err
	}
	u.LastActive = u.LastActive.UTC()
	if u.Bookings == nil {
		u.Bookings = []string{}
	}
	u.ChatHistory = []repo.ChatEntry{}
	return &u, nil
}

type chatQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// loadChats returns chat entries keyed by user id, in insertion order.
func loadChats(ctx context.Context, q chatQuerier, userID string) (map[string][]repo.ChatEntry, error) {
	sql := `SELECT user_id, id, question, answer, asked_at FROM chat_entries ORDER BY seq`
	var args []any
	if userID != "" {
		sql = `SELECT user_id, id, question, answer, asked_at FROM chat_entries WHERE user_id = $1 ORDER BY seq`
		args = append(args, userID)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]repo.ChatEntry)
	for rows.Next() {
		var (
			owner string
			c     repo.ChatEntry
		)
		if err := rows.Scan(&owner, &c.ID, &c.Question, &c.Answer, &c.Timestamp); err != nil {
			return nil, err
		}
		c.Timestamp = c.Timestamp.UTC()
		out[owner] = append(out[owner], c)
	}
	return out, rows.Err()
}

func (s *UserStore) List(ctx context.Context) ([]repo.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []repo.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	chats, err := loadChats(ctx, s.pool, "")
	if err != nil {
		return nil, err
	}
	for i := range users {
		if c, ok := chats[users[i].ID]; ok {
			users[i].ChatHistory = c
		}
	}
	return users, nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *UserStore) get(ctx context.Context, q pgx.Row) (*repo.User, error) {
	u, err := scanUser(q)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	chats, err := loadChats(ctx, s.pool, u.ID)
	if err != nil {
		return nil, err
	}
	if c, ok := chats[u.ID]; ok {
		u.ChatHistory = c
	}
	return u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*repo.User, error) {
	return s.get(ctx, s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

// GetOrCreate relies on the unique lower(email) index so two concurrent
// bookings for the same new address converge on one row.
func (s *UserStore) GetOrCreate(ctx context.Context, p repo.Patient, slotID string) (*repo.User, error) {
	var id string
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, phone, role, last_active, trials_participated, bookings)
		VALUES ($1, $2, $3, $4, $5, NOW(), 0, ARRAY[$6::text])
		ON CONFLICT ((lower(email))) DO UPDATE SET
			bookings    = array_append(users.bookings, $6::text),
			last_active = NOW()
		RETURNING id`,
		uuid.NewString(), p.Name, p.Email, p.Phone, repo.RoleParticipant, slotID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *UserStore) AppendChat(ctx context.Context, userID, question, answer string, at *time.Time) (*repo.User, *repo.ChatEntry, error) {
	now := time.Now().UTC()
	entry := repo.ChatEntry{
		ID:        uuid.NewString(),
		Question:  question,
		Answer:    answer,
		Timestamp: now,
	}
	if at != nil {
		entry.Timestamp = at.UTC()
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET last_active = $2 WHERE id = $1`, userID, now)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return repo.ErrUserNotFound
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO chat_entries (id, user_id, question, answer, asked_at)
			VALUES ($1, $2, $3, $4, $5)`,
			entry.ID, userID, entry.Question, entry.Answer, entry.Timestamp,
		)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	u, err := s.get(ctx, s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, nil, err
	}
	return u, &entry, nil
}
