package v1

import (
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Student        *handler.StudentHandler
	Match          *handler.MatchHandler
	Industry       *handler.IndustryHandler
	Application    *handler.ApplicationHandler
	Skill          *handler.SkillHandler
	Recommendation *handler.RecommendationHandler
	Opportunity    *handler.OpportunityHandler
	Communication  *handler.CommunicationHandler
}

// Register mounts every /api/v1 route. Everything except /auth sits
// behind authMw.
func Register(r fiber.Router, h Handlers, authMw fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", authMw)

	if h.User != nil {
		h.User.RegisterRoutes(protected.Group("/users"))
	}
	if h.Student != nil {
		h.Student.RegisterRoutes(protected.Group("/students"))
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(protected.Group("/matches"))
	}
	if h.Industry != nil {
		h.Industry.RegisterRoutes(protected.Group("/industry"))
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(protected.Group("/applications"))
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(protected.Group("/skills"))
	}
	if h.Recommendation != nil {
		h.Recommendation.RegisterRoutes(protected.Group("/recommendation"))
	}
	if h.Opportunity != nil {
		h.Opportunity.RegisterRoutes(protected)
	}
	if h.Communication != nil {
		h.Communication.RegisterRoutes(protected.Group("/communication", middleware.RequireRole(user.RoleIndustry)))
	}
}
