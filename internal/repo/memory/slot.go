package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

type SlotStore struct {
	mu    sync.RWMutex
	slots []repo.BookingSlot
	index map[string]int
}

var _ repo.SlotStore = (*SlotStore)(nil)

func NewSlotStore(initial []repo.BookingSlot) *SlotStore {
	s := &SlotStore{index: make(map[string]int, len(initial))}
	for _, slot := range initial {
		s.index[slot.ID] = len(s.slots)
		s.slots = append(s.slots, slot)
	}
	return s
}

func (s *SlotStore) List(ctx context.Context) ([]repo.BookingSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repo.BookingSlot, len(s.slots))
	copy(out, s.slots)
	return out, nil
}

func (s *SlotStore) Available(ctx context.Context) ([]repo.BookingSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repo.BookingSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.IsAvailable {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (s *SlotStore) Get(ctx context.Context, id string) (*repo.BookingSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, repo.ErrSlotNotFound
	}
	slot := s.slots[i]
	return &slot, nil
}

func (s *SlotStore) Create(ctx context.Context, ns repo.NewSlot) (*repo.BookingSlot, error) {
	status, available := repo.NormalizeStatus(ns.Status)
	slot := repo.BookingSlot{
		ID:          uuid.NewString(),
		Date:        ns.Date,
		Time:        ns.Time,
		IsAvailable: available,
		Status:      status,
		TrialName:   ns.TrialName,
		ContactInfo: ns.ContactInfo,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index[slot.ID] = len(s.slots)
	s.slots = append(s.slots, slot)
	return &slot, nil
}

func (s *SlotStore) UpdateDetails(ctx context.Context, id string, d repo.SlotDetails) (*repo.BookingSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, repo.ErrSlotNotFound
	}

	slot := &s.slots[i]
	if d.Date != "" {
		slot.Date = d.Date
	}
	if d.Time != "" {
		slot.Time = d.Time
	}
	if d.TrialName != "" {
		slot.TrialName = d.TrialName
	}
	if d.ContactInfo != "" {
		slot.ContactInfo = d.ContactInfo
	}

	out := *slot
	return &out, nil
}

func (s *SlotStore) Book(ctx context.Context, id string, p repo.Patient) (*repo.BookingSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return nil, repo.ErrSlotNotFound
	}

	slot := &s.slots[i]
	if !slot.IsAvailable {
		return nil, repo.ErrSlotNotAvailable
	}

	slot.IsAvailable = false
	slot.Status = repo.SlotStatusBooked
	slot.PatientName = p.Name
	slot.PatientEmail = p.Email
	slot.PatientPhone = p.Phone

	out := *slot
	return &out, nil
}
