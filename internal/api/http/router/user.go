package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/api/http/handler"
)

func (r *Router) registerUserRoutes(api fiber.Router, uh *handler.UserHandler) {
	api.Get("/users", uh.List)
	api.Get("/user-by-email/:email", uh.GetByEmail)
	api.Post("/users/:id/chat", uh.AppendChat)
}
