package app

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/config"
	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	"skillsync/internal/delivery/http/routes"
	v1 "skillsync/internal/delivery/http/routes/v1"
	"skillsync/internal/domain/matching"
	"skillsync/internal/usecase"
	"skillsync/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Hub       *ws.Hub
}

// Usecases groups the application services built on top of a Container.
type Usecases struct {
	Auth           *usecase.Auth
	User           *usecase.User
	Matching       *usecase.Matching
	Industry       *usecase.Industry
	Applications   *usecase.Applications
	Skill          *usecase.Skill
	Recommendation *usecase.Recommendation
	Opportunities  *usecase.Opportunities
	Communication  *usecase.Communication
}

// NewUsecases wires every usecase to c. events may be nil.
func NewUsecases(c *Container, events usecase.EventPublisher) Usecases {
	cfg := c.Config
	repos := c.Repos

	return Usecases{
		Auth: usecase.NewAuthUsecase(usecase.AuthDeps{
			Users:       repos.Users,
			JWT:         c.JWT,
			Tokens:      c.Store,
			Mailer:      c.Mailer,
			Google:      c.Google,
			FrontendURL: cfg.HTTP.FrontendURL,
			Logger:      c.Logger,
		}),
		User:           usecase.NewUserUsecase(repos.Users),
		Matching:       usecase.NewMatchingUsecase(repos.Users, repos.Roles, matching.NewRanker()),
		Industry:       usecase.NewIndustryUsecase(repos.Users, repos.Roles, repos.Applications, events, c.Logger),
		Applications:   usecase.NewApplicationUsecase(repos.Users, repos.Roles, repos.Applications, events),
		Skill:          usecase.NewSkillUsecase(repos.Users, repos.Verifications),
		Recommendation: usecase.NewRecommendationUsecase(c.AI, c.Logger),
		Opportunities: usecase.NewOpportunityUsecase(usecase.OpportunityDeps{
			Repo:         repos.Opportunities,
			Scholarships: c.Scholarships,
			Internships:  c.Internships,
			Cache:        c.Store,
			CacheTTL:     cfg.Redis.TTL,
			Events:       events,
			Logger:       c.Logger,
		}),
		Communication: usecase.NewCommunicationUsecase(c.Mailer, c.Logger),
	}
}

func newHandlers(uc Usecases) v1.Handlers {
	return v1.Handlers{
		Auth:           handler.NewAuthHandler(uc.Auth),
		User:           handler.NewUserHandler(uc.User),
		Student:        handler.NewStudentHandler(uc.User),
		Match:          handler.NewMatchHandler(uc.Matching),
		Industry:       handler.NewIndustryHandler(uc.Industry),
		Application:    handler.NewApplicationHandler(uc.Applications),
		Skill:          handler.NewSkillHandler(uc.Skill, uc.Recommendation),
		Recommendation: handler.NewRecommendationHandler(uc.Recommendation),
		Opportunity:    handler.NewOpportunityHandler(uc.Opportunities),
		Communication:  handler.NewCommunicationHandler(uc.Communication),
	}
}

func newHealthHandler(c *Container) *handler.HealthHandler {
	var db, rdb handler.Pinger
	if c.DB != nil {
		db = c.DB
	}
	if c.Redis != nil {
		rdb = c.Redis
	}
	return handler.NewHealthHandler(db, rdb)
}

// New assembles the HTTP application on top of c. The websocket hub is
// created but not started; see Bootstrap.
func New(c *Container) *App {
	cfg := c.Config
	logger := c.Logger

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, cfg, logger)

	hub := ws.NewHub(logger)
	events := ws.NewHandler(hub, cfg.HTTP.CORSAllowOrigins, logger)

	uc := NewUsecases(c, hub)
	authMw := middleware.NewAuthMiddleware(c.JWT).Middleware()

	routes.NewRegistry(newHealthHandler(c), newHandlers(uc), authMw, events.HandleEvents).Register(f)

	return &App{Fiber: f, Container: c, Hub: hub}
}

// Bootstrap builds the container and the HTTP app, and starts the
// websocket hub. The returned cleanup stops the hub and releases the
// container.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if _, err := c.Migrate(ctx, ""); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	app := New(c)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go app.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *zap.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(cors.New(corsConfig(cfg.HTTP.CORSAllowOrigins)))
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:  []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
	}
	// Credentials cannot be combined with a wildcard origin.
	c.AllowCredentials = len(origins) > 0
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			c.AllowCredentials = false
			break
		}
	}
	return c
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
