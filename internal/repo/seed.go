package repo

import "time"

// Demo data loaded into an empty store by storage.seed or `system seed`.

func SeedSlots() []BookingSlot {
	return []BookingSlot{
		{
			ID:          "1",
			Date:        "2024-01-25",
			Time:        "10:00 AM",
			IsAvailable: true,
			Status:      SlotStatusAvailable,
			TrialName:   "COVID-19 Vaccine Trial",
			ContactInfo: "contact@research.com",
		},
		{
			ID:          "2",
			Date:        "2024-01-25",
			Time:        "2:00 PM",
			IsAvailable: true,
			Status:      SlotStatusAvailable,
			TrialName:   "Flu Vaccine Study",
			ContactInfo: "contact@research.com",
		},
		{
			ID:           "3",
			Date:         "2024-01-26",
			Time:         "9:00 AM",
			IsAvailable:  false,
			Status:       SlotStatusBooked,
			TrialName:    "COVID-19 Vaccine Trial",
			ContactInfo:  "contact@research.com",
			PatientName:  "John Doe",
			PatientEmail: "john@example.com",
			PatientPhone: "+1234567890",
		},
		{
			ID:          "4",
			Date:        "2024-01-26",
			Time:        "11:00 AM",
			IsAvailable: true,
			Status:      SlotStatusAvailable,
			TrialName:   "Flu Vaccine Study",
			ContactInfo: "contact@research.com",
		},
	}
}

func SeedUsers(now time.Time) []User {
	return []User{
		{
			ID:                 "1",
			Name:               "John Doe",
			Email:              "john@example.com",
			Phone:              "+1234567890",
			Role:               RoleParticipant,
			LastActive:         now,
			TrialsParticipated: 1,
			Bookings:           []string{"3"},
			ChatHistory: []ChatEntry{
				{
					ID:        "chat1",
					Question:  "What are the side effects?",
					Answer:    "Common side effects include mild pain at injection site and low-grade fever.",
					Timestamp: now,
				},
			},
		},
		{
			ID:                 "2",
			Name:               "Alice Johnson",
			Email:              "alice@example.com",
			Phone:              "+1234567891",
			Role:               RoleParticipant,
			LastActive:         now.Add(-time.Hour),
			TrialsParticipated: 2,
			Bookings:           []string{},
			ChatHistory:        []ChatEntry{},
		},
	}
}

func SeedFAQs() []FAQ {
	return []FAQ{
		{
			ID:        "1",
			Question:  "What are the side effects of the vaccine?",
			Answer:    "Common side effects include mild pain at injection site, fatigue, and low-grade fever. These typically resolve within 24-48 hours.",
			Category:  "Safety",
			Frequency: 45,
		},
		{
			ID:        "2",
			Question:  "How long does the trial last?",
			Answer:    "Most vaccine trials last 6-12 months, with follow-up visits scheduled at regular intervals.",
			Category:  "Duration",
			Frequency: 38,
		},
		{
			ID:        "3",
			Question:  "Am I eligible for the trial?",
			Answer:    "Eligibility depends on age, health status, and previous vaccinations. Please check with our team for specific criteria.",
			Category:  "Eligibility",
			Frequency: 52,
		},
		{
			ID:        "4",
			Question:  "Can I cancel my appointment?",
			Answer:    "Yes, you can cancel or reschedule your appointment up to 24 hours before the scheduled time.",
			Category:  "Booking",
			Frequency: 29,
		},
		{
			ID:        "5",
			Question:  "Is the trial free?",
			Answer:    "Yes, participation in clinical trials is free. You may also receive compensation for your time and travel.",
			Category:  "Cost",
			Frequency: 33,
		},
	}
}
