package scheduling

import (
	"errors"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

var (
	ErrSlotNotFound         = repo.ErrSlotNotFound
	ErrSlotNotAvailable     = repo.ErrSlotNotAvailable
	ErrMissingPatientFields = errors.New("patient name, email, and phone are required")
	ErrInvalidSlot          = errors.New("date and time are required")
)
