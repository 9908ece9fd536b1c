package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/repo/memory"
)

func TestBook(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(true), nil)

	tests := []struct {
		name    string
		slotID  string
		req     BookRequest
		wantErr error
	}{
		{"missing phone", "1", BookRequest{PatientName: "Jane", PatientEmail: "jane@example.com"}, ErrMissingPatientFields},
		{"blank name", "1", BookRequest{PatientName: "  ", PatientEmail: "jane@example.com", PatientPhone: "1234567890"}, ErrMissingPatientFields},
		{"unknown slot", "nope", BookRequest{PatientName: "Jane", PatientEmail: "jane@example.com", PatientPhone: "1234567890"}, ErrSlotNotFound},
		{"already booked", "3", BookRequest{PatientName: "Jane", PatientEmail: "jane@example.com", PatientPhone: "1234567890"}, ErrSlotNotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(ctx, tt.slotID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	res, err := svc.Book(ctx, "1", BookRequest{PatientName: "Jane Doe", PatientEmail: "jane@example.com", PatientPhone: "+15551234567"})
	require.NoError(t, err)
	assert.Equal(t, repo.SlotStatusBooked, res.Slot.Status)
	assert.Equal(t, "jane@example.com", res.User.Email)
	assert.Equal(t, []string{"1"}, res.User.Bookings)

	_, err = svc.Book(ctx, "1", BookRequest{PatientName: "Other", PatientEmail: "o@example.com", PatientPhone: "1234567890"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestBook_ExistingUserAccumulatesBookings(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(true), nil)

	res, err := svc.Book(ctx, "2", BookRequest{PatientName: "John Doe", PatientEmail: "JOHN@example.com", PatientPhone: "+1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "1", res.User.ID)
	assert.Equal(t, []string{"3", "2"}, res.User.Bookings)
}

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(false), nil)

	_, err := svc.Create(ctx, CreateSlotRequest{Date: "2024-02-01"})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	slot, err := svc.Create(ctx, CreateSlotRequest{Date: "2024-02-01", Time: "10:00 AM", TrialName: "Flu Vaccine Study", Status: "BOOKED"})
	require.NoError(t, err)
	assert.Equal(t, repo.SlotStatusBooked, slot.Status)
	assert.False(t, slot.IsAvailable)

	updated, err := svc.UpdateDetails(ctx, slot.ID, UpdateSlotRequest{ContactInfo: "team@research.com"})
	require.NoError(t, err)
	assert.Equal(t, "team@research.com", updated.ContactInfo)
	assert.Equal(t, "10:00 AM", updated.Time)

	_, err = svc.UpdateDetails(ctx, "nope", UpdateSlotRequest{})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewClient(true), nil)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalSlots: 4, AvailableSlots: 3, BookedSlots: 1, TotalUsers: 2}, *st)

	_, err = svc.Book(ctx, "4", BookRequest{PatientName: "New Person", PatientEmail: "new@example.com", PatientPhone: "1234567890"})
	require.NoError(t, err)

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalSlots: 4, AvailableSlots: 2, BookedSlots: 2, TotalUsers: 3}, *st)
}
