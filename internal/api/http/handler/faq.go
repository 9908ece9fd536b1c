package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/service/faq"
)

type FAQHandler struct {
	svc faq.Service
}

func NewFAQHandler(svc faq.Service) *FAQHandler {
	return &FAQHandler{svc: svc}
}

func mapFAQError(c fiber.Ctx, err error) error {
	if errors.Is(err, faq.ErrNotFound) {
		return notFound(c, "Question not found")
	}
	return internalError(c, err)
}

// GET /frequent-questions
func (h *FAQHandler) List(c fiber.Ctx) error {
	faqs, err := h.svc.Sorted(c.Context())
	if err != nil {
		return mapFAQError(c, err)
	}
	return ok(c, faqs)
}

// POST /frequent-questions/:id/increment
func (h *FAQHandler) Increment(c fiber.Ctx) error {
	q, err := h.svc.Increment(c.Context(), c.Params("id"))
	if err != nil {
		return mapFAQError(c, err)
	}
	return ok(c, fiber.Map{
		"message":  "Question frequency updated",
		"question": q,
	})
}
