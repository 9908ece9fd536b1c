package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/pkg/constants"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateSlotRequest struct {
	Date        string
	Time        string
	TrialName   string
	ContactInfo string
	Status      string
}

type UpdateSlotRequest struct {
	Date        string
	Time        string
	TrialName   string
	ContactInfo string
}

type BookRequest struct {
	PatientName  string
	PatientEmail string
	PatientPhone string
}

type BookResult struct {
	Slot *repo.BookingSlot
	User *repo.User
}

type Stats struct {
	TotalSlots     int `json:"totalSlots"`
	AvailableSlots int `json:"availableSlots"`
	BookedSlots    int `json:"bookedSlots"`
	TotalUsers     int `json:"totalUsers"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]repo.BookingSlot, error)
	Available(ctx context.Context) ([]repo.BookingSlot, error)
	Get(ctx context.Context, id string) (*repo.BookingSlot, error)
	Create(ctx context.Context, req CreateSlotRequest) (*repo.BookingSlot, error)
	UpdateDetails(ctx context.Context, id string, req UpdateSlotRequest) (*repo.BookingSlot, error)

	// Book reserves the slot, attaches it to the patient's user record and
	// announces the booking on NATS.
	Book(ctx context.Context, slotID string, req BookRequest) (*BookResult, error)

	Stats(ctx context.Context) (*Stats, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type schedulingService struct {
	db *repo.Client
	nc *nats.Conn
}

func New(db *repo.Client, nc *nats.Conn) Service {
	return &schedulingService{db: db, nc: nc}
}

func (s *schedulingService) List(ctx context.Context) ([]repo.BookingSlot, error) {
	slots, err := s.db.Slot.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

func (s *schedulingService) Available(ctx context.Context) ([]repo.BookingSlot, error) {
	slots, err := s.db.Slot.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	return slots, nil
}

func (s *schedulingService) Get(ctx context.Context, id string) (*repo.BookingSlot, error) {
	slot, err := s.db.Slot.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return slot, nil
}

func (s *schedulingService) Create(ctx context.Context, req CreateSlotRequest) (*repo.BookingSlot, error) {
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, ErrInvalidSlot
	}

	slot, err := s.db.Slot.Create(ctx, repo.NewSlot{
		SlotDetails: repo.SlotDetails{
			Date:        strings.TrimSpace(req.Date),
			Time:        strings.TrimSpace(req.Time),
			TrialName:   strings.TrimSpace(req.TrialName),
			ContactInfo: strings.TrimSpace(req.ContactInfo),
		},
		Status: repo.SlotStatus(strings.ToLower(req.Status)),
	})
	if err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

func (s *schedulingService) UpdateDetails(ctx context.Context, id string, req UpdateSlotRequest) (*repo.BookingSlot, error) {
	slot, err := s.db.Slot.UpdateDetails(ctx, id, repo.SlotDetails{
		Date:        strings.TrimSpace(req.Date),
		Time:        strings.TrimSpace(req.Time),
		TrialName:   strings.TrimSpace(req.TrialName),
		ContactInfo: strings.TrimSpace(req.ContactInfo),
	})
	if err != nil {
		if errors.Is(err, repo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("update slot: %w", err)
	}
	return slot, nil
}

func (s *schedulingService) Book(ctx context.Context, slotID string, req BookRequest) (*BookResult, error) {
	p := repo.Patient{
		Name:  strings.TrimSpace(req.PatientName),
		Email: strings.TrimSpace(req.PatientEmail),
		Phone: strings.TrimSpace(req.PatientPhone),
	}
	if p.Name == "" || p.Email == "" || p.Phone == "" {
		return nil, ErrMissingPatientFields
	}

	slot, err := s.db.Slot.Book(ctx, slotID, p)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, repo.ErrSlotNotAvailable):
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("book slot: %w", err)
	}

	user, err := s.db.User.GetOrCreate(ctx, p, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("record booking for user: %w", err)
	}

	// Publish NATS event
	if s.nc != nil {
		subject := fmt.Sprintf("%s.%s", constants.SubjectSlotBooked, slot.ID)
		if err := s.nc.Publish(subject, []byte(user.ID)); err != nil {
			slog.Warn("scheduling: publish slot.booked failed", "slot_id", slot.ID, "err", err)
		}
	}

	return &BookResult{Slot: slot, User: user}, nil
}

func (s *schedulingService) Stats(ctx context.Context) (*Stats, error) {
	slots, err := s.db.Slot.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	users, err := s.db.User.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	st := &Stats{TotalSlots: len(slots), TotalUsers: users}
	for _, slot := range slots {
		if slot.IsAvailable {
			st.AvailableSlots++
		} else if slot.Status == repo.SlotStatusBooked {
			st.BookedSlots++
		}
	}
	return st, nil
}
