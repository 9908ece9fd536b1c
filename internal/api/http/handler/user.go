package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func mapUserError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return notFound(c, "User not found")
	case errors.Is(err, user.ErrInvalidTimestamp):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /users
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, users)
}

// GET /user-by-email/:email
//
// Clients send the address percent-encoded (john%40example.com).
func (h *UserHandler) GetByEmail(c fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return badRequest(c, "invalid email")
	}

	u, err := h.svc.FindByEmail(c.Context(), email)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// POST /users/:id/chat
func (h *UserHandler) AppendChat(c fiber.Ctx) error {
	var body struct {
		Question  string `json:"question"`
		Answer    string `json:"answer"`
		Timestamp string `json:"timestamp"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, entry, err := h.svc.AppendChat(c.Context(), c.Params("id"), user.ChatRequest{
		Question:  body.Question,
		Answer:    body.Answer,
		Timestamp: body.Timestamp,
	})
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, fiber.Map{
		"message":   "Chat history updated",
		"user":      u,
		"chatEntry": entry,
	})
}
