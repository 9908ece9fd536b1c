package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/trialbook_backend/config"
	"github.com/Alijeyrad/trialbook_backend/internal/api/http/handler"
	"github.com/Alijeyrad/trialbook_backend/internal/service/chat"
	"github.com/Alijeyrad/trialbook_backend/internal/service/faq"
	"github.com/Alijeyrad/trialbook_backend/internal/service/scheduling"
	"github.com/Alijeyrad/trialbook_backend/internal/service/user"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	Redis         *redis.Client `optional:"true"`
	SchedulingSvc scheduling.Service
	UserSvc       user.Service
	FAQSvc        faq.Service
	ChatSvc       chat.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	slotH := handler.NewSlotHandler(r.p.SchedulingSvc)
	userH := handler.NewUserHandler(r.p.UserSvc)
	faqH := handler.NewFAQHandler(r.p.FAQSvc)
	chatH := handler.NewChatHandler(r.p.ChatSvc)

	api := app.Group("/api")
	api.Get("/health", handler.Health)

	r.registerSlotRoutes(api, slotH)
	r.registerUserRoutes(api, userH)
	r.registerFAQRoutes(api, faqH)
	r.registerChatRoutes(api, chatH)

	// Registered last so it only sees requests no route matched.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
