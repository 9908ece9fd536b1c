package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

type UserStore struct {
	mu    sync.RWMutex
	users []*repo.User
	now   func() time.Time
}

var _ repo.UserStore = (*UserStore)(nil)

func NewUserStore(initial []repo.User) *UserStore {
	s := &UserStore{now: func() time.Time { return time.Now().UTC() }}
	for i := range initial {
		s.users = append(s.users, initial[i].Clone())
	}
	return s
}

func (s *UserStore) List(ctx context.Context) ([]repo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repo.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u.Clone())
	}
	return out, nil
}

func (s *UserStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*repo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findByEmailLocked(email)
	if u == nil {
		return nil, repo.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *UserStore) GetOrCreate(ctx context.Context, p repo.Patient, slotID string) (*repo.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.findByEmailLocked(p.Email); u != nil {
		u.Bookings = append(u.Bookings, slotID)
		u.LastActive = s.now()
		return u.Clone(), nil
	}

	u := &repo.User{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		Role:        repo.RoleParticipant,
		LastActive:  s.now(),
		Bookings:    []string{slotID},
		ChatHistory: []repo.ChatEntry{},
	}
	s.users = append(s.users, u)
	return u.Clone(), nil
}

func (s *UserStore) AppendChat(ctx context.Context, userID, question, answer string, at *time.Time) (*repo.User, *repo.ChatEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u *repo.User
	for _, candidate := range s.users {
		if candidate.ID == userID {
			u = candidate
			break
		}
	}
	if u == nil {
		return nil, nil, repo.ErrUserNotFound
	}

	now := s.now()
	entry := repo.ChatEntry{
		ID:        uuid.NewString(),
		Question:  question,
		Answer:    answer,
		Timestamp: now,
	}
	if at != nil {
		entry.Timestamp = *at
	}

	u.ChatHistory = append(u.ChatHistory, entry)
	u.LastActive = now

	return u.Clone(), &entry, nil
}

func (s *UserStore) findByEmailLocked(email string) *repo.User {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}
