package sms

import (
	"context"
	"errors"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"
	"github.com/nyaruka/phonenumbers"

	"github.com/Alijeyrad/trialbook_backend/config"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// Client provides SMS sending functionality via sms.ir.
type Client struct {
	client     *smsir.Client
	enabled    bool
	templateID string
	region     string
}

// NewFromConfig creates a new SMS client from the application configuration.
// If SMS is disabled, returns a client that no-ops on all operations.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	region := cfg.DefaultRegion
	if region == "" {
		region = "US"
	}

	if !cfg.Enabled {
		return &Client{enabled: false, region: region}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}
	if cfg.SMSIR.TemplateID == "" {
		return nil, fmt.Errorf("sms.ir template ID required when SMS enabled")
	}

	return &Client{
		client:     smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey),
		enabled:    true,
		templateID: cfg.SMSIR.TemplateID,
		region:     region,
	}, nil
}

// Booking holds the template parameters of a booking confirmation.
type Booking struct {
	Name  string
	Trial string
	Date  string
	Time  string
}

// SendBookingConfirmation texts the booking details to phone using the
// configured template, which must declare the parameters name, trial,
// date and time. The phone is normalised to E.164 first; numbers without
// a country code are read in the configured default region.
// If SMS is disabled, this is a no-op and returns nil.
func (c *Client) SendBookingConfirmation(ctx context.Context, phone string, b Booking) error {
	if !c.enabled {
		return nil
	}

	mobile, err := NormalizePhone(phone, c.region)
	if err != nil {
		return err
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     mobile,
		TemplateID: c.templateID,
		Parameters: []smsir.UltraFastParameter{
			{Key: "name", Value: b.Name},
			{Key: "trial", Value: b.Trial},
			{Key: "date", Value: b.Date},
			{Key: "time", Value: b.Time},
		},
	}

	if _, err := c.client.Verification.UltraFastSend(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}

	return nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// NormalizePhone parses a free-form phone number and returns it in E.164.
func NormalizePhone(raw, region string) (string, error) {
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidPhone, raw, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
