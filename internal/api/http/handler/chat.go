package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/service/chat"
)

type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// POST /chat
func (h *ChatHandler) Send(c fiber.Ctx) error {
	var body struct {
		SessionID string `json:"sessionId"`
		// Sender is accepted for clients written against the Rasa REST channel.
		Sender  string `json:"sender"`
		Message string `json:"message"`
		Email   string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(body.Message) == "" {
		return badRequest(c, "message is required")
	}

	sessionID := body.SessionID
	if sessionID == "" {
		sessionID = body.Sender
	}

	reply, err := h.svc.Handle(c.Context(), chat.Request{
		SessionID: sessionID,
		Message:   body.Message,
		Email:     body.Email,
	})
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, reply)
}

// GET /chat/:sessionId
func (h *ChatHandler) Status(c fiber.Ctx) error {
	st, err := h.svc.Status(c.Context(), c.Params("sessionId"))
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, st)
}

// DELETE /chat/:sessionId
func (h *ChatHandler) Cancel(c fiber.Ctx) error {
	reply, err := h.svc.Cancel(c.Context(), c.Params("sessionId"))
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, reply)
}
