package user

import (
	"errors"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

var (
	ErrNotFound         = repo.ErrUserNotFound
	ErrInvalidTimestamp = errors.New("timestamp must be an RFC 3339 date-time")
)
