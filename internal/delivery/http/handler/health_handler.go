package handler

import (
	"context"
	"time"

	"skillsync/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler accepts nil pingers for services that are not
// configured; they report "disabled".
func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthCheckTimeout)
	defer cancel()

	dbStatus := probe(ctx, h.db)
	redisStatus := probe(ctx, h.redis)

	status := fiber.StatusOK
	msg := response.MessageOK
	if dbStatus == "down" {
		status = fiber.StatusServiceUnavailable
		msg = response.MessageServiceUnavailable
	}

	return response.Success(c, status, msg, map[string]string{
		"status":   msg,
		"database": dbStatus,
		"redis":    redisStatus,
	})
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
