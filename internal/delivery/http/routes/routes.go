package routes

import (
	"skillsync/internal/delivery/http/handler"
	v1 "skillsync/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	api    v1.Handlers
	authMw fiber.Handler
	events fiber.Handler
}

// NewRegistry wires the route tree. events serves /ws/events and may be
// nil.
func NewRegistry(health *handler.HealthHandler, api v1.Handlers, authMw fiber.Handler, events fiber.Handler) *Registry {
	return &Registry{health: health, api: api, authMw: authMw, events: events}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerEvents(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.events != nil {
		app.Get("/ws/events", r.events)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.api, r.authMw)
}
