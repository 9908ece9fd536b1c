package repo

import "time"

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCancelled SlotStatus = "cancelled"
)

const RoleParticipant = "participant"

// BookingSlot is a bookable date/time/trial combination.
// IsAvailable is true exactly when Status is SlotStatusAvailable.
type BookingSlot struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	IsAvailable  bool       `json:"isAvailable"`
	Status       SlotStatus `json:"status"`
	TrialName    string     `json:"trialName"`
	ContactInfo  string     `json:"contactInfo"`
	PatientName  string     `json:"patientName"`
	PatientEmail string     `json:"patientEmail"`
	PatientPhone string     `json:"patientPhone"`
}

// SlotDetails holds the descriptive fields of a slot. Availability is not part of it.
type SlotDetails struct {
	Date        string
	Time        string
	TrialName   string
	ContactInfo string
}

// NewSlot describes a slot to create.
type NewSlot struct {
	SlotDetails
	// Status is optional; anything other than booked/cancelled creates an available slot.
	Status SlotStatus
}

type Patient struct {
	Name  string
	Email string
	Phone string
}

type ChatEntry struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

type User struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	Role               string      `json:"role"`
	LastActive         time.Time   `json:"lastActive"`
	TrialsParticipated int         `json:"trialsParticipated"`
	Bookings           []string    `json:"bookings"`
	ChatHistory        []ChatEntry `json:"chatHistory"`
}

type FAQ struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Frequency int    `json:"frequency"`
}

// NormalizeStatus maps a requested status onto the availability invariant.
func NormalizeStatus(s SlotStatus) (SlotStatus, bool) {
	switch s {
	case SlotStatusBooked, SlotStatusCancelled:
		return s, false
	default:
		return SlotStatusAvailable, true
	}
}

// Clone returns a deep copy so callers never share slices with a store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Bookings = append([]string(nil), u.Bookings...)
	cp.ChatHistory = append([]ChatEntry(nil), u.ChatHistory...)
	if cp.Bookings == nil {
		cp.Bookings = []string{}
	}
	if cp.ChatHistory == nil {
		cp.ChatHistory = []ChatEntry{}
	}
	return &cp
}
