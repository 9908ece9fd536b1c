package repo

import "errors"

var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotNotAvailable = errors.New("slot is not available")
	ErrUserNotFound     = errors.New("user not found")
	ErrFAQNotFound      = errors.New("question not found")
)

// IsNotFound reports whether err is one of the repo not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrFAQNotFound)
}
