// Package nlu talks to the conversational assistant that answers chat
// messages the booking dialogue and FAQ lookup do not cover.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Alijeyrad/trialbook_backend/config"
)

// ErrTransport is returned when the assistant cannot be reached or answers
// with something other than a successful reply.
var ErrTransport = errors.New("nlu: transport error")

const (
	msgNotSure       = "I'm not sure how to help with that. Could you try asking in a different way?"
	msgNoTextReplied = "I understand you're asking something, but I'm not sure how to help with that. Could you try rephrasing?"
)

type Reply struct {
	Text string
}

type Responder interface {
	Respond(ctx context.Context, sender, message string) (Reply, error)
}

// New builds the responder selected by cfg.Provider.
func New(ctx context.Context, cfg config.NLUConfig) (Responder, error) {
	switch cfg.Provider {
	case config.NLUProviderRasa:
		return NewRasaClient(cfg.Rasa.URL, seconds(cfg.Rasa.TimeoutSeconds, 10)), nil
	case config.NLUProviderGemini:
		return NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, seconds(cfg.Gemini.TimeoutSeconds, 20))
	default:
		return nil, fmt.Errorf("nlu: unknown provider %q", cfg.Provider)
	}
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}
