// Package repo defines the storage contracts for slots, users and FAQs.
// Backings live in the memory and postgres subpackages.
package repo

import (
	"context"
	"time"
)

type SlotStore interface {
	List(ctx context.Context) ([]BookingSlot, error)
	Available(ctx context.Context) ([]BookingSlot, error)
	Get(ctx context.Context, id string) (*BookingSlot, error)
	Create(ctx context.Context, s NewSlot) (*BookingSlot, error)
	UpdateDetails(ctx context.Context, id string, d SlotDetails) (*BookingSlot, error)
	// Book is the only operation that changes availability. It fails with
	// ErrSlotNotFound or ErrSlotNotAvailable and succeeds at most once per id.
	Book(ctx context.Context, id string, p Patient) (*BookingSlot, error)
}

type UserStore interface {
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetOrCreate(ctx context.Context, p Patient, slotID string) (*User, error)
	AppendChat(ctx context.Context, userID, question, answer string, at *time.Time) (*User, *ChatEntry, error)
}

type FAQStore interface {
	SortedByFrequency(ctx context.Context) ([]FAQ, error)
	IncrementFrequency(ctx context.Context, id string) (*FAQ, error)
	FindMatching(ctx context.Context, text string) (*FAQ, error)
}

// Client bundles the three stores so they can be injected as one dependency.
type Client struct {
	Slot SlotStore
	User UserStore
	FAQ  FAQStore

	closer func() error
}

func NewClient(slots SlotStore, users UserStore, faqs FAQStore, closer func() error) *Client {
	return &Client{Slot: slots, User: users, FAQ: faqs, closer: closer}
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
