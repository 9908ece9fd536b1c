package faq

import "github.com/Alijeyrad/trialbook_backend/internal/repo"

var ErrNotFound = repo.ErrFAQNotFound
