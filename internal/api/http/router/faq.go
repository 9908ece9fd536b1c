package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/api/http/handler"
)

func (r *Router) registerFAQRoutes(api fiber.Router, fh *handler.FAQHandler) {
	api.Get("/frequent-questions", fh.List)
	api.Post("/frequent-questions/:id/increment", fh.Increment)
}
