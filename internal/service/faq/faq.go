package faq

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

type Service interface {
	Sorted(ctx context.Context) ([]repo.FAQ, error)
	Increment(ctx context.Context, id string) (*repo.FAQ, error)
	// Match returns the best keyword match for text, or nil when nothing matches.
	Match(ctx context.Context, text string) (*repo.FAQ, error)
}

type faqService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &faqService{db: db}
}

func (s *faqService) Sorted(ctx context.Context) ([]repo.FAQ, error) {
	faqs, err := s.db.FAQ.SortedByFrequency(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return faqs, nil
}

func (s *faqService) Increment(ctx context.Context, id string) (*repo.FAQ, error) {
	f, err := s.db.FAQ.IncrementFrequency(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrFAQNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("increment faq: %w", err)
	}
	return f, nil
}

func (s *faqService) Match(ctx context.Context, text string) (*repo.FAQ, error) {
	f, err := s.db.FAQ.FindMatching(ctx, text)
	if err != nil {
		if errors.Is(err, repo.ErrFAQNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("match faq: %w", err)
	}
	return f, nil
}
