package nlu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"
)

const rasaWebhookPath = "/webhooks/rest/webhook"

type rasaRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type rasaMessage struct {
	RecipientID string `json:"recipient_id,omitempty"`
	Text        string `json:"text,omitempty"`
	Message     string `json:"message,omitempty"`
	Image       string `json:"image,omitempty"`
}

// RasaClient posts messages to a Rasa REST channel.
type RasaClient struct {
	url     string
	timeout time.Duration
	cc      *client.Client
}

func NewRasaClient(baseURL string, timeout time.Duration) *RasaClient {
	return &RasaClient{
		url:     strings.TrimRight(baseURL, "/") + rasaWebhookPath,
		timeout: timeout,
		cc:      client.New().SetTimeout(timeout),
	}
}

func (r *RasaClient) Respond(ctx context.Context, sender, message string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.cc.Post(r.url, client.Config{
		Ctx:  ctx,
		Body: rasaRequest{Sender: sender, Message: message},
	})
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Close()

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return Reply{}, fmt.Errorf("%w: rasa returned status %d", ErrTransport, code)
	}

	var msgs []rasaMessage
	if err := resp.JSON(&msgs); err != nil {
		return Reply{}, fmt.Errorf("%w: decode rasa reply: %v", ErrTransport, err)
	}

	return Reply{Text: joinRasa(msgs)}, nil
}

func joinRasa(msgs []rasaMessage) string {
	if len(msgs) == 0 {
		return msgNotSure
	}

	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		switch {
		case m.Text != "":
			parts = append(parts, m.Text)
		case m.Message != "":
			parts = append(parts, m.Message)
		case m.Image != "":
			parts = append(parts, "[image]")
		}
	}
	if len(parts) == 0 {
		return msgNoTextReplied
	}
	return strings.Join(parts, "\n\n")
}
