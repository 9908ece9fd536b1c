package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/api/http/handler"
)

func (r *Router) registerSlotRoutes(api fiber.Router, sh *handler.SlotHandler) {
	api.Get("/booking-slots", sh.List)
	api.Post("/booking-slots", sh.Create)
	api.Get("/booking-slots/:id", sh.Get)
	api.Patch("/booking-slots/:id", sh.Update)

	api.Get("/available-slots", sh.Available)
	api.Post("/book-slot/:id", sh.Book)

	api.Get("/stats", sh.Stats)
}
