package dialogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
)

const (
	msgNoSlots           = "I'm sorry, there are no available appointment slots at the moment. Our research team will add new slots soon. Please check back later or contact us directly."
	msgSystemUnavailable = "I'm having trouble accessing our booking system right now. Please try again later or contact our research team directly."
	msgAllSlotsGone      = "Sorry, all slots have been booked while we were talking. Please start a new booking to see current availability."
	msgSlotTaken         = "Sorry, this slot was just booked by someone else. Please start a new booking to see current availability."
	msgInvalidName       = "Please provide a valid full name (letters and spaces only)."
	msgInvalidEmail      = "Please provide a valid email address (e.g., john@example.com)."
	msgInvalidPhone      = "Please provide a valid phone number (e.g., +1234567890 or (123) 456-7890)."
	msgAskPhone          = "Great! 📧\n\nLastly, please provide your phone number:"
	msgConfirmReprompt   = `Please type "CONFIRM" to complete your booking or "CANCEL" to start over.`
	msgCancelled         = "Booking cancelled. Feel free to book again anytime by saying 'book appointment'!"
	msgUnknownStep       = "Something went wrong with the booking process. Let's start over. Would you like to book an appointment?"
	msgBookingFailed     = "Sorry, there was an error completing your booking.\n\nPlease try again or contact our research team directly."
)

// FormatDate renders an ISO date as "Monday, January 2, 2006". Values that
// do not parse are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func slotMenu(slots []repo.BookingSlot) string {
	var b strings.Builder
	for i, s := range slots {
		fmt.Fprintf(&b, "%d. %s at %s\n", i+1, FormatDate(s.Date), s.Time)
		fmt.Fprintf(&b, "   🔬 %s\n", s.TrialName)
		fmt.Fprintf(&b, "   📞 Contact: %s\n\n", s.ContactInfo)
	}
	return b.String()
}

func startText(slots []repo.BookingSlot) string {
	return "Great! I can help you book an appointment for our clinical trial. 📅\n\n" +
		"Here are the currently available time slots:\n\n" +
		slotMenu(slots) +
		fmt.Sprintf("Please reply with the number of your preferred slot (1-%d):", len(slots))
}

func staleSlotText(slots []repo.BookingSlot) string {
	return "Sorry, that slot was just booked by someone else. Here are the currently available slots:\n\n" +
		slotMenu(slots) +
		fmt.Sprintf("Please select a new slot (1-%d):", len(slots))
}

func invalidIndexText(n int) string {
	return fmt.Sprintf("Please enter a valid number between 1 and %d to select your time slot.", n)
}

func selectedText(s *repo.BookingSlot) string {
	return fmt.Sprintf("Perfect! You selected:\n📅 %s at %s\n🔬 %s\n\nTo complete your booking, please provide your full name:",
		FormatDate(s.Date), s.Time, s.TrialName)
}

func askEmailText(name string) string {
	return fmt.Sprintf("Thank you, %s! 👋\n\nPlease provide your email address:", name)
}

func summaryText(st *State) string {
	s := st.SelectedSlot
	return "Perfect! Please confirm your booking details:\n\n" +
		fmt.Sprintf("👤 Name: %s\n", st.Info.Name) +
		fmt.Sprintf("📧 Email: %s\n", st.Info.Email) +
		fmt.Sprintf("📱 Phone: %s\n\n", st.Info.Phone) +
		fmt.Sprintf("📅 Date: %s\n", FormatDate(s.Date)) +
		fmt.Sprintf("🕐 Time: %s\n", s.Time) +
		fmt.Sprintf("🔬 Trial: %s\n", s.TrialName) +
		fmt.Sprintf("📞 Contact: %s\n\n", s.ContactInfo) +
		`Type "CONFIRM" to book this appointment or "CANCEL" to start over.`
}

func confirmedText(s *repo.BookingSlot, u *repo.User) string {
	return "🎉 Booking Confirmed! 🎉\n\n" +
		"Your appointment has been successfully scheduled:\n\n" +
		fmt.Sprintf("📅 Date: %s\n", FormatDate(s.Date)) +
		fmt.Sprintf("🕐 Time: %s\n", s.Time) +
		fmt.Sprintf("🔬 Trial: %s\n", s.TrialName) +
		fmt.Sprintf("📞 Contact: %s\n\n", s.ContactInfo) +
		fmt.Sprintf("✅ Confirmation email will be sent to %s\n", u.Email) +
		"⏰ Please arrive 15 minutes early\n" +
		"📋 Bring a valid ID and any required documents\n\n" +
		fmt.Sprintf("Your booking ID is: %s\n\n", s.ID) +
		"If you need to cancel or reschedule, please contact us at least 24 hours in advance.\n\n" +
		"Is there anything else I can help you with?"
}

