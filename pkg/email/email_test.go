package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/config"
)

func TestBuildBookingConfirmation(t *testing.T) {
	msg, err := BuildBookingConfirmation(BookingConfirmation{
		PatientName: "Jane <Doe>",
		Email:       "jane@example.com",
		TrialName:   "Flu Vaccine Study",
		Date:        "Thursday, January 25, 2024",
		Time:        "2:00 PM",
		ContactInfo: "contact@research.com",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"jane@example.com"}, msg.To)
	assert.Equal(t, "Appointment confirmed: Flu Vaccine Study on Thursday, January 25, 2024", msg.Subject)
	assert.Contains(t, msg.TextBody, "Hi Jane <Doe>,")
	assert.Contains(t, msg.TextBody, "Time: 2:00 PM")
	assert.Contains(t, msg.TextBody, "Contact: contact@research.com")
	assert.Contains(t, msg.HTMLBody, "Jane &lt;Doe&gt;")
	assert.NotContains(t, msg.HTMLBody, "<Doe>")
}

func TestBuildBookingConfirmation_NoName(t *testing.T) {
	msg, err := BuildBookingConfirmation(BookingConfirmation{Email: "a@b.co", TrialName: "T", Date: "d", Time: "t"})
	require.NoError(t, err)
	assert.Contains(t, msg.TextBody, "Hi there,")
	assert.NotContains(t, msg.TextBody, "Contact:")
}

func TestBuildMessage_Validation(t *testing.T) {
	valid := Message{To: []string{"a@b.co"}, Subject: "s", TextBody: "b"}

	tests := []struct {
		name   string
		from   string
		mutate func(m *Message)
		reason string
	}{
		{"missing from", "", func(m *Message) {}, "from is required"},
		{"blank recipients", "x@y.co", func(m *Message) { m.To = []string{" "} }, "at least one recipient is required"},
		{"missing subject", "x@y.co", func(m *Message) { m.Subject = "  " }, "subject is required"},
		{"missing body", "x@y.co", func(m *Message) { m.TextBody = "" }, "either TextBody or HTMLBody is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			_, err := buildMessage(tt.from, m)
			var invalid ErrInvalidMessage
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.reason, invalid.Reason)
		})
	}

	_, err := buildMessage("x@y.co", valid)
	assert.NoError(t, err)
}

func TestSend_Disabled(t *testing.T) {
	c := New(config.EmailConfig{Enabled: false})
	err := c.Send(context.Background(), Message{To: []string{"a@b.co"}, Subject: "s", TextBody: "b"})
	assert.ErrorAs(t, err, &ErrDisabled{})
}
