package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// BookingConfirmation is the data for the message sent after a slot is booked.
type BookingConfirmation struct {
	PatientName string
	Email       string
	TrialName   string
	// Date is already formatted for display.
	Date        string
	Time        string
	ContactInfo string
}

var bookingHTML = template.Must(template.New("booking").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi {{.PatientName}},</h2>
    <p>Your appointment for the <strong>{{.TrialName}}</strong> is confirmed.</p>
    <table style="background-color: #f3f4f6; padding: 10px 15px; border-radius: 4px;">
        <tr><td>Date</td><td><strong>{{.Date}}</strong></td></tr>
        <tr><td>Time</td><td><strong>{{.Time}}</strong></td></tr>
        {{if .ContactInfo}}<tr><td>Contact</td><td>{{.ContactInfo}}</td></tr>{{end}}
    </table>
    <p>You can cancel or reschedule up to 24 hours before the appointment.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thank you for taking part,<br>The Research Team</p>
</body>
</html>`))

// BuildBookingConfirmation renders the confirmation sent to a participant.
func BuildBookingConfirmation(data BookingConfirmation) (Message, error) {
	name := data.PatientName
	if name == "" {
		name = "there"
		data.PatientName = name
	}

	text := fmt.Sprintf(`Hi %s,

Your appointment for the %s is confirmed.

Date: %s
Time: %s
`, name, data.TrialName, data.Date, data.Time)
	if data.ContactInfo != "" {
		text += "Contact: " + data.ContactInfo + "\n"
	}
	text += `
You can cancel or reschedule up to 24 hours before the appointment.

Thank you for taking part,
The Research Team`

	var html bytes.Buffer
	if err := bookingHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render booking confirmation: %w", err)
	}

	return Message{
		To:       []string{data.Email},
		Subject:  fmt.Sprintf("Appointment confirmed: %s on %s", data.TrialName, data.Date),
		TextBody: text,
		HTMLBody: html.String(),
	}, nil
}
