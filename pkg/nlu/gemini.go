package nlu

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const geminiPreamble = `You are the assistant of a clinical research site. Answer questions from prospective trial participants briefly and in plain language.
Do not give medical advice. If the user wants to book an appointment, tell them to say "book appointment".`

// GeminiClient answers single-turn questions through the Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: c, model: model, timeout: timeout}, nil
}

func (g *GeminiClient) Respond(ctx context.Context, sender, message string) (Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := geminiPreamble + "\n\nUser message: " + message
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Reply{Text: msgNotSure}, nil
	}
	return Reply{Text: text}, nil
}
