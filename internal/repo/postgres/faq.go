package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

const faqColumns = `id, question, answer, category, frequency`

type FAQStore struct {
	pool *pgxpool.Pool
}

var _ repo.FAQStore = (*FAQStore)(nil)

func NewFAQStore(pool *pgxpool.Pool) *FAQStore {
	return &FAQStore{pool: pool}
}

func scanFAQ(row pgx.Row) (*repo.FAQ, error) {
	var f repo.FAQ
	if err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.Frequency); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FAQStore) SortedByFrequency(ctx context.Context) ([]repo.FAQ, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+faqColumns+` FROM faqs ORDER BY frequency DESC, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []repo.FAQ{}
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (s *FAQStore) IncrementFrequency(ctx context.Context, id string) (*repo.FAQ, error) {
	f, err := scanFAQ(s.pool.QueryRow(ctx,
		`UPDATE faqs SET frequency = frequency + 1 WHERE id = $1 RETURNING `+faqColumns, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrFAQNotFound
	}
	return f, err
}

func (s *FAQStore) FindMatching(ctx context.Context, text string) (*repo.FAQ, error) {
	sorted, err := s.SortedByFrequency(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := repo.MatchFAQ(sorted, text)
	if !ok {
		return nil, repo.ErrFAQNotFound
	}
	return f, nil
}
