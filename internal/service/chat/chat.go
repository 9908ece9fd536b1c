// Package chat routes chat-kiosk messages to the booking dialogue, the FAQ
// list, slot summaries or the conversational assistant.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alijeyrad/trialbook_backend/internal/repo"
	"github.com/Alijeyrad/trialbook_backend/internal/service/dialogue"
	"github.com/Alijeyrad/trialbook_backend/internal/service/faq"
	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
	"github.com/Alijeyrad/trialbook_backend/pkg/nlu"
)

type Source string

const (
	SourceBooking      Source = "booking"
	SourceFAQ          Source = "faq"
	SourceTrials       Source = "trials"
	SourceAvailability Source = "availability"
	SourceNLU          Source = "nlu"
	SourceFallback     Source = "fallback"
)

const (
	faqUpsell    = "\n\nWould you like to book an appointment for our clinical trial?"
	fallbackText = "I'm having trouble understanding that right now. Could you try asking something else?"
)

var (
	trialInfoKeywords    = []string{"trial", "study", "research"}
	availabilityKeywords = []string{"available", "when", "time", "date", "slot", "availability", "open slots"}
)

type Request struct {
	SessionID string
	Message   string
	// Email optionally identifies the participant behind the session.
	Email string
}

type Reply struct {
	SessionID string        `json:"sessionId"`
	Text      string        `json:"text"`
	Source    Source        `json:"source"`
	Active    bool          `json:"active"`
	Step      dialogue.Step `json:"step,omitempty"`
}

type Service interface {
	Handle(ctx context.Context, req Request) (*Reply, error)
	Status(ctx context.Context, sessionID string) (*dialogue.State, error)
	Cancel(ctx context.Context, sessionID string) (*Reply, error)
}

type chatService struct {
	dialogue  *dialogue.Manager
	faqs      faq.Service
	slots     scheduling.Service
	users     user.Service
	responder nlu.Responder
	replies   metric.Int64Counter
}

func New(dm *dialogue.Manager, faqs faq.Service, slots scheduling.Service, users user.Service, responder nlu.Responder) Service {
	replies, err := otel.Meter("github.com/Alijeyrad/trialbook_backend/internal/service/chat").Int64Counter(
		"chat_replies_total",
		metric.WithDescription("Chat replies by the component that produced them"),
		metric.WithUnit("{reply}"),
	)
	if err != nil {
		slog.Warn("chat: create reply counter failed", "err", err)
	}
	return &chatService{
		dialogue:  dm,
		faqs:      faqs,
		slots:     slots,
		users:     users,
		responder: responder,
		replies:   replies,
	}
}

func (s *chatService) Handle(ctx context.Context, req Request) (*Reply, error) {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		s.identify(ctx, req.SessionID, email)
	}

	r, err := s.route(ctx, req)
	if err != nil {
		return nil, err
	}
	r.SessionID = req.SessionID
	if s.replies != nil {
		s.replies.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(r.Source))))
	}
	return r, nil
}

func (s *chatService) route(ctx context.Context, req Request) (*Reply, error) {
	dr, handled, err := s.dialogue.Handle(ctx, req.SessionID, req.Message)
	if err != nil {
		return nil, fmt.Errorf("booking dialogue: %w", err)
	}
	if handled {
		return &Reply{Text: dr.Text, Source: SourceBooking, Active: dr.Active, Step: dr.Step}, nil
	}

	if r := s.answerFAQ(ctx, req); r != nil {
		return r, nil
	}

	lower := strings.ToLower(req.Message)
	if containsAny(lower, trialInfoKeywords) {
		return &Reply{Text: s.trialInformation(ctx), Source: SourceTrials}, nil
	}
	if containsAny(lower, availabilityKeywords) {
		return &Reply{Text: s.availability(ctx), Source: SourceAvailability}, nil
	}

	out, err := s.responder.Respond(ctx, req.SessionID, req.Message)
	if err != nil {
		slog.Warn("chat: nlu responder failed", "session_id", req.SessionID, "err", err)
		return &Reply{Text: fallbackText, Source: SourceFallback}, nil
	}
	return &Reply{Text: out.Text, Source: SourceNLU}, nil
}

func (s *chatService) Status(ctx context.Context, sessionID string) (*dialogue.State, error) {
	return s.dialogue.Status(ctx, sessionID)
}

func (s *chatService) Cancel(ctx context.Context, sessionID string) (*Reply, error) {
	r, err := s.dialogue.Cancel(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Reply{SessionID: sessionID, Text: r.Text, Source: SourceBooking}, nil
}

func (s *chatService) identify(ctx context.Context, sessionID, email string) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			slog.Warn("chat: identify user failed", "err", err)
		}
		return
	}
	if err := s.dialogue.Identify(ctx, sessionID, u.ID); err != nil {
		slog.Warn("chat: bind user to session failed", "session_id", sessionID, "err", err)
	}
}

func (s *chatService) answerFAQ(ctx context.Context, req Request) *Reply {
	f, err := s.faqs.Match(ctx, req.Message)
	if err != nil {
		slog.Warn("chat: faq lookup failed", "err", err)
		return nil
	}
	if f == nil {
		return nil
	}

	if _, err := s.faqs.Increment(ctx, f.ID); err != nil {
		slog.Warn("chat: increment faq frequency failed", "faq_id", f.ID, "err", err)
	}
	s.logChat(ctx, req.SessionID, req.Message, f.Answer)

	return &Reply{Text: f.Answer + faqUpsell, Source: SourceFAQ}
}

// logChat records the exchange on the session's user, if one is known.
func (s *chatService) logChat(ctx context.Context, sessionID, question, answer string) {
	st, err := s.dialogue.Status(ctx, sessionID)
	if err != nil || st.UserID == "" {
		return
	}
	if _, _, err := s.users.AppendChat(ctx, st.UserID, user.ChatRequest{Question: question, Answer: answer}); err != nil {
		slog.Warn("chat: log chat history failed", "user_id", st.UserID, "err", err)
	}
}

func (s *chatService) trialInformation(ctx context.Context) string {
	slots, err := s.slots.Available(ctx)
	if err != nil {
		slog.Error("chat: list available slots failed", "err", err)
		return "I'm having trouble accessing trial information right now. Please try again later or contact our research team directly."
	}
	if len(slots) == 0 {
		return "Currently, there are no clinical trials available for new participants. Please contact our research team for more information or check back later."
	}

	type trial struct {
		name    string
		contact string
		count   int
	}
	var (
		order  []string
		trials = make(map[string]*trial)
	)
	for _, sl := range slots {
		t, ok := trials[sl.TrialName]
		if !ok {
			t = &trial{name: sl.TrialName, contact: sl.ContactInfo}
			trials[sl.TrialName] = t
			order = append(order, sl.TrialName)
		}
		t.count++
	}

	var b strings.Builder
	b.WriteString("Here are our current clinical trials with available appointments:\n\n")
	for i, name := range order {
		t := trials[name]
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.name)
		fmt.Fprintf(&b, "   Available slots: %d\n", t.count)
		fmt.Fprintf(&b, "   Contact: %s\n\n", t.contact)
	}
	b.WriteString("Would you like to book an appointment for any of these trials? Just say 'book appointment' and I'll help you schedule!")
	return b.String()
}

func (s *chatService) availability(ctx context.Context) string {
	slots, err := s.slots.Available(ctx)
	if err != nil {
		slog.Error("chat: list available slots failed", "err", err)
		return "I'm having trouble checking availability right now. Please try again later."
	}
	if len(slots) == 0 {
		return "There are currently no available appointment slots. Please contact our research team or check back later."
	}

	var b strings.Builder
	plural := ""
	if len(slots) > 1 {
		plural = "s"
	}
	fmt.Fprintf(&b, "We have %d available appointment slot%s for clinical trials:\n\n", len(slots), plural)

	shown := slots
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, sl := range shown {
		writeSlot(&b, i+1, sl)
	}
	if len(slots) > 5 {
		fmt.Fprintf(&b, "... and %d more slots available.\n\n", len(slots)-5)
	}
	b.WriteString("To book any of these appointments, just say 'book appointment' and I'll guide you through the process!")
	return b.String()
}

func writeSlot(b *strings.Builder, n int, sl repo.BookingSlot) {
	fmt.Fprintf(b, "%d. %s at %s\n", n, dialogue.FormatDate(sl.Date), sl.Time)
	fmt.Fprintf(b, "   Trial: %s\n\n", sl.TrialName)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
