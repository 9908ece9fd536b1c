package dialogue

import "github.com/Alijeyrad/trialbook_backend/internal/repo"

// Step is the position of a session inside the booking dialogue.
type Step string

const (
	StepSelectSlot Step = "SELECT_SLOT"
	StepGetName    Step = "GET_NAME"
	StepGetEmail   Step = "GET_EMAIL"
	StepGetPhone   Step = "GET_PHONE"
	StepConfirm    Step = "CONFIRM"
)

type PatientInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// State is the per-session dialogue record. UserID identifies the
// participant behind the session and outlives dialogue resets.
type State struct {
	Active       bool               `json:"active"`
	Step         Step               `json:"step,omitempty"`
	SelectedSlot *repo.BookingSlot  `json:"selectedSlot,omitempty"`
	Info         PatientInfo        `json:"info"`
	Snapshot     []repo.BookingSlot `json:"snapshot,omitempty"`
	UserID       string             `json:"userId,omitempty"`
}

func (s *State) reset() {
	*s = State{UserID: s.UserID}
}
