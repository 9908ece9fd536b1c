package dialogue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/repo/memory"
	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
)

type fixture struct {
	mgr   *Manager
	slots scheduling.Service
	db    *repo.Client
	store *MemoryStore
	ids   []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.NewClient(false)
	slots := scheduling.New(db, nil)

	var ids []string
	for _, tm := range []string{"10:00 AM", "2:00 PM"} {
		s, err := slots.Create(ctx, scheduling.CreateSlotRequest{
			Date: "2024-01-25", Time: tm, TrialName: "COVID-19 Vaccine Trial", ContactInfo: "contact@research.com",
		})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	store := NewMemoryStore(30 * time.Minute)
	return &fixture{
		mgr:   NewManager(slots, user.New(db), store),
		slots: slots,
		db:    db,
		store: store,
		ids:   ids,
	}
}

func (f *fixture) send(t *testing.T, session, msg string) Reply {
	t.Helper()
	r, handled, err := f.mgr.Handle(context.Background(), session, msg)
	require.NoError(t, err)
	require.True(t, handled, "message %q was not handled", msg)
	return r
}

func (f *fixture) step(t *testing.T, session string) Step {
	t.Helper()
	st, err := f.mgr.Status(context.Background(), session)
	require.NoError(t, err)
	return st.Step
}

func TestHandle_IgnoresNonBookingMessagesWhenInactive(t *testing.T) {
	f := newFixture(t)
	_, handled, err := f.mgr.Handle(context.Background(), "s1", "what are the side effects?")
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestHandle_FullBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r := f.send(t, "s1", "book appointment")
	assert.Equal(t, StepSelectSlot, r.Step)
	assert.Contains(t, r.Text, "1. Thursday, January 25, 2024 at 10:00 AM")
	assert.Contains(t, r.Text, "2. Thursday, January 25, 2024 at 2:00 PM")
	assert.Contains(t, r.Text, "(1-2)")

	steps := []struct {
		in   string
		want Step
	}{
		{"1", StepGetName},
		{"Jane Doe", StepGetEmail},
		{"Jane@Example.com", StepGetPhone},
		{"+15551234567", StepConfirm},
	}
	for _, s := range steps {
		r = f.send(t, "s1", s.in)
		assert.Equal(t, s.want, r.Step, "after %q", s.in)
		assert.True(t, r.Active)
	}
	assert.Contains(t, r.Text, "Email: jane@example.com")

	r = f.send(t, "s1", "confirm")
	assert.False(t, r.Active)
	assert.Contains(t, r.Text, "Booking Confirmed")
	assert.Contains(t, r.Text, "Thursday, January 25, 2024")
	assert.Contains(t, r.Text, "10:00 AM")
	assert.Contains(t, r.Text, f.ids[0])

	avail, err := f.slots.Available(ctx)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assert.Equal(t, f.ids[1], avail[0].ID)

	st, err := f.mgr.Status(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, st.Active)
	require.NotEmpty(t, st.UserID)

	u, err := f.db.User.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, st.UserID, u.ID)
	assert.Equal(t, []string{f.ids[0]}, u.Bookings)
	require.Len(t, u.ChatHistory, 1)
	assert.Equal(t, "Appointment booking completed", u.ChatHistory[0].Question)
}

func TestHandle_OutOfRangeIndexReprompts(t *testing.T) {
	f := newFixture(t)
	f.send(t, "s1", "I want to book")

	for _, in := range []string{"3", "0", "-1", "one", ""} {
		r := f.send(t, "s1", in)
		assert.Equal(t, StepSelectSlot, r.Step, "input %q", in)
		assert.Equal(t, invalidIndexText(2), r.Text)
	}
}

func TestHandle_InvalidInputsKeepStep(t *testing.T) {
	tests := []struct {
		name     string
		prefix   []string
		input    string
		want     Step
		reprompt string
	}{
		{"short name", []string{"1"}, "J", StepGetName, msgInvalidName},
		{"digits in name", []string{"1"}, "J4ne", StepGetName, msgInvalidName},
		{"dashes only", []string{"1"}, "--", StepGetName, msgInvalidName},
		{"dots only", []string{"1"}, "..", StepGetName, msgInvalidName},
		{"punctuation and spaces", []string{"1"}, ". - '", StepGetName, msgInvalidName},
		{"bad email", []string{"1", "Jane Doe"}, "not-an-email", StepGetEmail, msgInvalidEmail},
		{"short phone", []string{"1", "Jane Doe", "jane@example.com"}, "12345", StepGetPhone, msgInvalidPhone},
		{"letters in phone", []string{"1", "Jane Doe", "jane@example.com"}, "call me maybe", StepGetPhone, msgInvalidPhone},
		{"unclear confirmation", []string{"1", "Jane Doe", "jane@example.com", "(123) 456-7890"}, "maybe", StepConfirm, msgConfirmReprompt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.send(t, "s1", "book")
			for _, in := range tt.prefix {
				f.send(t, "s1", in)
			}
			r := f.send(t, "s1", tt.input)
			assert.Equal(t, tt.want, r.Step)
			assert.Equal(t, tt.reprompt, r.Text)
		})
	}
}

func TestHandle_NameAcceptsPunctuation(t *testing.T) {
	f := newFixture(t)
	f.send(t, "s1", "book")
	f.send(t, "s1", "1")
	r := f.send(t, "s1", "Mary-Jane O'Neil Jr.")
	assert.Equal(t, StepGetEmail, r.Step)
}

func TestHandle_CancelAtEveryStep(t *testing.T) {
	inputs := []string{"1", "Jane Doe", "jane@example.com", "+15551234567"}
	for n := 0; n <= len(inputs); n++ {
		f := newFixture(t)
		f.send(t, "s1", "book appointment")
		for _, in := range inputs[:n] {
			f.send(t, "s1", in)
		}

		r := f.send(t, "s1", "Cancel")
		assert.False(t, r.Active, "cancel after %d inputs", n)
		assert.Equal(t, msgCancelled, r.Text)

		_, handled, err := f.mgr.Handle(context.Background(), "s1", "1")
		require.NoError(t, err)
		assert.False(t, handled)

		r = f.send(t, "s1", "book appointment")
		assert.Equal(t, StepSelectSlot, r.Step)
	}
}

func TestHandle_ConfirmNoCancels(t *testing.T) {
	f := newFixture(t)
	for _, in := range []string{"book", "2", "Jane Doe", "jane@example.com", "+15551234567"} {
		f.send(t, "s1", in)
	}
	r := f.send(t, "s1", "NO")
	assert.False(t, r.Active)
	assert.Equal(t, msgCancelled, r.Text)

	avail, err := f.slots.Available(context.Background())
	require.NoError(t, err)
	assert.Len(t, avail, 2)
}

func TestHandle_StaleSlotResnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.send(t, "s1", "book")

	_, err := f.slots.Book(ctx, f.ids[0], scheduling.BookRequest{PatientName: "Other", PatientEmail: "o@example.com", PatientPhone: "1234567890"})
	require.NoError(t, err)

	r := f.send(t, "s1", "1")
	assert.Equal(t, StepSelectSlot, r.Step)
	assert.Contains(t, r.Text, "just booked by someone else")
	assert.Contains(t, r.Text, "(1-1)")

	st, err := f.mgr.Status(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, st.Snapshot, 1)
	assert.Equal(t, f.ids[1], st.Snapshot[0].ID)

	r = f.send(t, "s1", "1")
	assert.Equal(t, StepGetName, r.Step)
	assert.Contains(t, r.Text, "2:00 PM")
}

func TestHandle_AllSlotsGoneResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.send(t, "s1", "book")

	for _, id := range f.ids {
		_, err := f.slots.Book(ctx, id, scheduling.BookRequest{PatientName: "Other", PatientEmail: "o@example.com", PatientPhone: "1234567890"})
		require.NoError(t, err)
	}

	r := f.send(t, "s1", "2")
	assert.False(t, r.Active)
	assert.Equal(t, msgAllSlotsGone, r.Text)

	r = f.send(t, "s1", "book again")
	assert.False(t, r.Active)
	assert.Equal(t, msgNoSlots, r.Text)
}

func TestHandle_SlotTakenBeforeConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, in := range []string{"book", "1", "Jane Doe", "jane@example.com", "+15551234567"} {
		f.send(t, "s1", in)
	}

	_, err := f.slots.Book(ctx, f.ids[0], scheduling.BookRequest{PatientName: "Other", PatientEmail: "o@example.com", PatientPhone: "1234567890"})
	require.NoError(t, err)

	r := f.send(t, "s1", "yes")
	assert.False(t, r.Active)
	assert.Equal(t, msgSlotTaken, r.Text)

	_, err = f.db.User.FindByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestHandle_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	f.send(t, "alice", "book")
	f.send(t, "alice", "1")

	_, handled, err := f.mgr.Handle(context.Background(), "bob", "Jane Doe")
	require.NoError(t, err)
	assert.False(t, handled)

	assert.Equal(t, StepGetName, f.step(t, "alice"))
	assert.Equal(t, Step(""), f.step(t, "bob"))
}

func TestHandle_UnknownStepResets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, "s1", &State{Active: true, Step: "SOMETHING_ELSE", UserID: "u1"}))

	r := f.send(t, "s1", "hello")
	assert.False(t, r.Active)
	assert.Equal(t, msgUnknownStep, r.Text)

	st, err := f.mgr.Status(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", st.UserID)
}

func TestCancelAndIdentify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mgr.Identify(ctx, "s1", "user-1"))
	f.send(t, "s1", "book")

	r, err := f.mgr.Cancel(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, r.Active)

	st, err := f.mgr.Status(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, st.Active)
	assert.Empty(t, st.Snapshot)
	assert.Equal(t, "user-1", st.UserID)
}

func TestIsBookingIntent(t *testing.T) {
	tests := map[string]bool{
		"I'd like to BOOK a visit":   true,
		"can I sign up?":             true,
		"how do I join trial":        true,
		"what are the side effects":  false,
		"tell me about the research": false,
	}
	for msg, want := range tests {
		assert.Equal(t, want, IsBookingIntent(msg), msg)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Friday, January 26, 2024", FormatDate("2024-01-26"))
	assert.Equal(t, "next week", FormatDate("next week"))
}

// failingBooker books nothing and fails the way a broken database would.
type failingBooker struct {
	scheduling.Service
}

func (failingBooker) Book(ctx context.Context, slotID string, req scheduling.BookRequest) (*scheduling.BookResult, error) {
	return nil, fmt.Errorf("record booking for user: %w", errors.New("pq: connection refused"))
}

func TestHandle_BookingFailureHidesError(t *testing.T) {
	f := newFixture(t)
	mgr := NewManager(failingBooker{Service: f.slots}, user.New(f.db), f.store)

	for _, in := range []string{"book", "1", "Jane Doe", "jane@example.com", "+15551234567"} {
		_, _, err := mgr.Handle(context.Background(), "s1", in)
		require.NoError(t, err)
	}

	r, handled, err := mgr.Handle(context.Background(), "s1", "yes")
	require.NoError(t, err)
	require.True(t, handled)
	assert.False(t, r.Active)
	assert.Equal(t, msgBookingFailed, r.Text)
	assert.NotContains(t, r.Text, "connection refused")
	assert.NotContains(t, r.Text, "record booking")
}

// flakyStore fails every Set once failSet is turned on.
type flakyStore struct {
	*MemoryStore
	failSet bool
}

func (s *flakyStore) Set(ctx context.Context, sessionID string, st *State) error {
	if s.failSet {
		return errors.New("redis: connection reset")
	}
	return s.MemoryStore.Set(ctx, sessionID, st)
}

func TestHandle_ConfirmSurvivesStateSaveFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := &flakyStore{MemoryStore: NewMemoryStore(30 * time.Minute)}
	mgr := NewManager(f.slots, user.New(f.db), store)

	for _, in := range []string{"book", "1", "Jane Doe", "jane@example.com", "+15551234567"} {
		_, _, err := mgr.Handle(ctx, "s1", in)
		require.NoError(t, err)
	}

	store.failSet = true
	r, handled, err := mgr.Handle(ctx, "s1", "confirm")
	require.NoError(t, err)
	require.True(t, handled)
	assert.False(t, r.Active)
	assert.Contains(t, r.Text, "Booking Confirmed")

	avail, err := f.slots.Available(ctx)
	require.NoError(t, err)
	assert.Len(t, avail, 1)
}

func TestHandle_StateSaveFailureBeforeBookingIsAnError(t *testing.T) {
	f := newFixture(t)
	store := &flakyStore{MemoryStore: NewMemoryStore(30 * time.Minute), failSet: true}
	mgr := NewManager(f.slots, user.New(f.db), store)

	_, handled, err := mgr.Handle(context.Background(), "s1", "book")
	assert.True(t, handled)
	assert.Error(t, err)
}
