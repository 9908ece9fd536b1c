// Package memory is the in-process repo backing used by default and in tests.
package memory

import (
	"time"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

// NewClient builds a repo.Client over fresh in-memory stores, optionally
// pre-loaded with the demo data.
func NewClient(seed bool) *repo.Client {
	if !seed {
		return repo.NewClient(NewSlotStore(nil), NewUserStore(nil), NewFAQStore(nil), nil)
	}
	return repo.NewClient(
		NewSlotStore(repo.SeedSlots()),
		NewUserStore(repo.SeedUsers(time.Now().UTC())),
		NewFAQStore(repo.SeedFAQs()),
		nil,
	)
}
