package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every environment override, e.g. TRIALBOOK_SERVER_PORT.
	EnvPrefix = "TRIALBOOK"

	ServiceName = "trialbook_backend"
)

// NATS subjects.
const (
	SubjectSlotBooked = "trialbook.slot.booked"
)
