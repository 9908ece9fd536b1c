package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/Alijeyrad/trialbook_backend/config"
)

func TestNewFromConfig_Disabled(t *testing.T) {
	client, err := NewFromConfig(config.SMSConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}

	if client.IsEnabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestNewFromConfig_EnabledValidation(t *testing.T) {
	tests := []struct {
		name        string
		smsir       config.SMSIRConfig
		expectError bool
	}{
		{"missing API key", config.SMSIRConfig{TemplateID: "100"}, true},
		{"missing template", config.SMSIRConfig{APIKey: "key"}, true},
		{"complete", config.SMSIRConfig{APIKey: "key", SecretKey: "secret", TemplateID: "100"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewFromConfig(config.SMSConfig{Enabled: true, SMSIR: tt.smsir})
			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if !client.IsEnabled() {
				t.Error("Expected client to be enabled")
			}
		})
	}
}

func TestSendBookingConfirmation_DisabledClient(t *testing.T) {
	client := &Client{enabled: false}

	err := client.SendBookingConfirmation(context.Background(), "not a phone", Booking{Name: "Jane"})
	if err != nil {
		t.Errorf("Expected no error for disabled client, got: %v", err)
	}
}

func TestSendBookingConfirmation_InvalidPhone(t *testing.T) {
	client := &Client{enabled: true, region: "US", templateID: "100"}

	err := client.SendBookingConfirmation(context.Background(), "12", Booking{Name: "Jane"})
	if !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("Expected ErrInvalidPhone, got: %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
		valid  bool
	}{
		{"already E.164", "+12015550123", "US", "+12015550123", true},
		{"national with punctuation", "(201) 555-0123", "US", "+12015550123", true},
		{"international overrides region", "+44 121 234 5678", "US", "+441212345678", true},
		{"iranian mobile", "0912 345 6789", "IR", "+989123456789", true},
		{"too short", "12345", "US", "", false},
		{"letters", "call me", "US", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if !tt.valid {
				if !errors.Is(err, ErrInvalidPhone) {
					t.Errorf("Expected ErrInvalidPhone, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
