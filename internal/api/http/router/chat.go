package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/trialbook_backend/internal/api/http/handler"
	"github.com/Alijeyrad/trialbook_backend/internal/api/http/middleware"
)

func (r *Router) registerChatRoutes(api fiber.Router, ch *handler.ChatHandler) {
	limit := middleware.ChatLimiter(r.p.Redis, r.p.Cfg.Server.ChatRateLimit.RequestsPerMinute)

	api.Post("/chat", limit, ch.Send)
	api.Get("/chat/:sessionId", ch.Status)
	api.Delete("/chat/:sessionId", ch.Cancel)
}
