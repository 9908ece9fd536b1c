package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

type ChatRequest struct {
	Question string
	Answer   string
	// Timestamp is optional; when empty the entry is stamped with the current time.
	Timestamp string
}

type Service interface {
	List(ctx context.Context) ([]repo.User, error)
	FindByEmail(ctx context.Context, email string) (*repo.User, error)
	AppendChat(ctx context.Context, userID string, req ChatRequest) (*repo.User, *repo.ChatEntry, error)
}

type userService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &userService{db: db}
}

func (s *userService) List(ctx context.Context) ([]repo.User, error) {
	users, err := s.db.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*repo.User, error) {
	u, err := s.db.User.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *userService) AppendChat(ctx context.Context, userID string, req ChatRequest) (*repo.User, *repo.ChatEntry, error) {
	var at *time.Time
	if ts := strings.TrimSpace(req.Timestamp); ts != "" {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, nil, ErrInvalidTimestamp
		}
		parsed = parsed.UTC()
		at = &parsed
	}

	u, entry, err := s.db.User.AppendChat(ctx, userID, req.Question, req.Answer, at)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("append chat: %w", err)
	}
	return u, entry, nil
}
