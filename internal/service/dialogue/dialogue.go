// Package dialogue drives the scripted booking conversation: pick a slot,
// give name, email and phone, then confirm. State is kept per chat session.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
)

var (
	namePattern  = regexp.MustCompile(`^[\p{L}\s.'-]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

var bookingKeywords = []string{
	"book", "appointment", "schedule", "reserve", "slot",
	"sign up", "register", "enroll", "join trial", "participate",
}

// IsBookingIntent reports whether a message asks to book an appointment.
func IsBookingIntent(message string) bool {
	m := strings.ToLower(message)
	for _, kw := range bookingKeywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

type Reply struct {
	Text   string
	Active bool
	Step   Step
}

type Manager struct {
	slots scheduling.Service
	users user.Service
	store SessionStore
	locks *keyedMutex
}

func NewManager(slots scheduling.Service, users user.Service, store SessionStore) *Manager {
	return &Manager{
		slots: slots,
		users: users,
		store: store,
		locks: newKeyedMutex(),
	}
}

// Handle feeds one message into the session's dialogue. An active dialogue
// always consumes the message; an inactive one only starts on booking
// intent. handled is false when the message was left for other responders.
func (m *Manager) Handle(ctx context.Context, sessionID, message string) (reply Reply, handled bool, err error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	st, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return Reply{}, false, fmt.Errorf("load dialogue state: %w", err)
	}

	var (
		text   string
		booked bool
	)
	switch {
	case st.Active:
		text, booked = m.step(ctx, st, message)
	case IsBookingIntent(message):
		text = m.start(ctx, st)
	default:
		return Reply{}, false, nil
	}

	if err := m.store.Set(ctx, sessionID, st); err != nil {
		if !booked {
			return Reply{}, true, fmt.Errorf("save dialogue state: %w", err)
		}
		// The slot is already booked; the participant still gets the confirmation.
		slog.ErrorContext(ctx, "dialogue: save state after booking failed", "session_id", sessionID, "err", err)
	}
	return Reply{Text: text, Active: st.Active, Step: st.Step}, true, nil
}

// Cancel resets the session's dialogue. The identified user is kept.
func (m *Manager) Cancel(ctx context.Context, sessionID string) (Reply, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	st, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return Reply{}, fmt.Errorf("load dialogue state: %w", err)
	}
	st.reset()
	if st.UserID == "" {
		err = m.store.Clear(ctx, sessionID)
	} else {
		err = m.store.Set(ctx, sessionID, st)
	}
	if err != nil {
		return Reply{}, fmt.Errorf("save dialogue state: %w", err)
	}
	return Reply{Text: msgCancelled}, nil
}

func (m *Manager) Status(ctx context.Context, sessionID string) (*State, error) {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	st, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load dialogue state: %w", err)
	}
	return st, nil
}

// Identify binds a known user to the session so later answers are logged
// to their chat history.
func (m *Manager) Identify(ctx context.Context, sessionID, userID string) error {
	unlock := m.locks.Lock(sessionID)
	defer unlock()

	st, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load dialogue state: %w", err)
	}
	st.UserID = userID
	if err := m.store.Set(ctx, sessionID, st); err != nil {
		return fmt.Errorf("save dialogue state: %w", err)
	}
	return nil
}

func (m *Manager) start(ctx context.Context, st *State) string {
	slots, err := m.slots.Available(ctx)
	if err != nil {
		slog.Error("dialogue: list available slots failed", "err", err)
		st.reset()
		return msgSystemUnavailable
	}
	if len(slots) == 0 {
		st.reset()
		return msgNoSlots
	}

	st.Active = true
	st.Step = StepSelectSlot
	st.Snapshot = slots
	return startText(slots)
}

// step advances an active dialogue by one message. booked reports that a
// slot was reserved while handling it.
func (m *Manager) step(ctx context.Context, st *State, message string) (text string, booked bool) {
	if strings.EqualFold(strings.TrimSpace(message), "cancel") {
		st.reset()
		return msgCancelled, false
	}

	switch st.Step {
	case StepSelectSlot:
		return m.selectSlot(ctx, st, message), false
	case StepGetName:
		return getName(st, message), false
	case StepGetEmail:
		return getEmail(st, message), false
	case StepGetPhone:
		return getPhone(st, message), false
	case StepConfirm:
		return m.confirm(ctx, st, message)
	default:
		st.reset()
		return msgUnknownStep, false
	}
}

func (m *Manager) selectSlot(ctx context.Context, st *State, message string) string {
	n, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil || n < 1 || n > len(st.Snapshot) {
		return invalidIndexText(len(st.Snapshot))
	}
	chosen := st.Snapshot[n-1]

	current, err := m.slots.Available(ctx)
	if err != nil {
		slog.Error("dialogue: list available slots failed", "err", err)
		st.reset()
		return msgSystemUnavailable
	}
	if len(current) == 0 {
		st.reset()
		return msgAllSlotsGone
	}

	for i := range current {
		if current[i].ID == chosen.ID {
			slot := current[i]
			st.SelectedSlot = &slot
			st.Step = StepGetName
			return selectedText(&slot)
		}
	}

	st.Snapshot = current
	return staleSlotText(current)
}

func getName(st *State, message string) string {
	name := strings.TrimSpace(message)
	if utf8.RuneCountInString(name) < 2 || !namePattern.MatchString(name) || strings.IndexFunc(name, unicode.IsLetter) < 0 {
		return msgInvalidName
	}
	st.Info.Name = name
	st.Step = StepGetEmail
	return askEmailText(name)
}

func getEmail(st *State, message string) string {
	email := strings.ToLower(strings.TrimSpace(message))
	if !emailPattern.MatchString(email) {
		return msgInvalidEmail
	}
	st.Info.Email = email
	st.Step = StepGetPhone
	return msgAskPhone
}

func getPhone(st *State, message string) string {
	phone := strings.TrimSpace(message)
	if !phonePattern.MatchString(phone) {
		return msgInvalidPhone
	}
	st.Info.Phone = phone
	st.Step = StepConfirm
	return summaryText(st)
}

func (m *Manager) confirm(ctx context.Context, st *State, message string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "no", "cancel":
		st.reset()
		return msgCancelled, false
	case "yes", "confirm":
	default:
		return msgConfirmReprompt, false
	}

	slot, err := m.slots.Get(ctx, st.SelectedSlot.ID)
	if err != nil && !errors.Is(err, scheduling.ErrSlotNotFound) {
		slog.Error("dialogue: re-check slot failed", "slot_id", st.SelectedSlot.ID, "err", err)
		st.reset()
		return msgBookingFailed, false
	}
	if slot == nil || !slot.IsAvailable {
		st.reset()
		return msgSlotTaken, false
	}

	res, err := m.slots.Book(ctx, slot.ID, scheduling.BookRequest{
		PatientName:  st.Info.Name,
		PatientEmail: st.Info.Email,
		PatientPhone: st.Info.Phone,
	})
	if err != nil {
		st.reset()
		if errors.Is(err, scheduling.ErrSlotNotAvailable) || errors.Is(err, scheduling.ErrSlotNotFound) {
			return msgSlotTaken, false
		}
		slog.Error("dialogue: booking failed", "slot_id", slot.ID, "err", err)
		return msgBookingFailed, false
	}

	m.logBooking(ctx, res.User.ID, res.Slot)

	st.reset()
	st.UserID = res.User.ID
	return confirmedText(res.Slot, res.User), true
}

func (m *Manager) logBooking(ctx context.Context, userID string, s *repo.BookingSlot) {
	_, _, err := m.users.AppendChat(ctx, userID, user.ChatRequest{
		Question:  "Appointment booking completed",
		Answer:    fmt.Sprintf("Booked %s at %s for %s", s.Date, s.Time, s.TrialName),
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		slog.Warn("dialogue: log booking to chat history failed", "user_id", userID, "err", err)
	}
}
