package memory

import (
	"context"
	"sync"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

type FAQStore struct {
	mu   sync.RWMutex
	faqs []repo.FAQ
}

var _ repo.FAQStore = (*FAQStore)(nil)

func NewFAQStore(initial []repo.FAQ) *FAQStore {
	return &FAQStore{faqs: append([]repo.FAQ(nil), initial...)}
}

// SortedByFrequency returns a sorted copy; the stored order is left untouched.
func (s *FAQStore) SortedByFrequency(ctx context.Context) ([]repo.FAQ, error) {
	s.mu.RLock()
	out := make([]repo.FAQ, len(s.faqs))
	copy(out, s.faqs)
	s.mu.RUnlock()

	repo.SortByFrequency(out)
	return out, nil
}

func (s *FAQStore) IncrementFrequency(ctx context.Context, id string) (*repo.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.faqs {
		if s.faqs[i].ID == id {
			s.faqs[i].Frequency++
			f := s.faqs[i]
			return &f, nil
		}
	}
	return nil, repo.ErrFAQNotFound
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
