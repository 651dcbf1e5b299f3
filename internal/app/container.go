package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/database"
	"skillsync/internal/database/migration"
	dbpostgres "skillsync/internal/database/postgres"
	"skillsync/internal/domain/application"
	"skillsync/internal/domain/opportunity"
	"skillsync/internal/domain/role"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"
	"skillsync/internal/infrastructure/ai"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/infrastructure/email"
	"skillsync/internal/infrastructure/google"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/repository"
	"skillsync/internal/repository/memory"
	"skillsync/internal/scraper"
	"skillsync/internal/usecase"
	"skillsync/migrations"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// KeyValueStore is satisfied by both cache.Redis and cache.Memory.
type KeyValueStore interface {
	usecase.TokenStore
	usecase.ScanCache
}

type Repositories struct {
	Users         user.Repository
	Roles         role.Repository
	Applications  application.Repository
	Opportunities opportunity.Repository
	Verifications skill.VerificationRepository
}

// Container owns every long-lived dependency. Optional services are left
// nil when their configuration is absent.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *cache.Redis
	Store KeyValueStore
	Repos Repositories

	JWT    *jwt.HMACService
	Mailer email.Sender
	Google google.Verifier
	AI     usecase.TextGenerator

	Scholarships *scraper.ScholarshipScraper
	Internships  *scraper.InternshipScraper
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openDatabase(ctx); err != nil {
		return nil, err
	}
	c.openStore()

	if err := c.openAI(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	c.Mailer = email.NewSender(cfg.Email, logger)
	if cfg.Google.ClientID != "" {
		c.Google = google.NewIDTokenVerifier(cfg.Google.ClientID)
	}

	c.Scholarships = scraper.NewScholarshipScraper(
		cfg.Scraper.ScholarshipBaseURL,
		scraper.ChromeRenderer{ExecPath: cfg.Scraper.ChromeBin, Timeout: cfg.Scraper.Timeout},
		logger,
	)
	c.Internships = scraper.NewInternshipScraper(cfg.Scraper.InternshipSearchURL, logger)

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) error {
	if !c.Config.Database.Enabled() {
		c.Logger.Warn("DB_HOST not set, using in-memory repositories")
		c.Repos = Repositories{
			Users:         memory.NewUserRepository(),
			Roles:         memory.NewRoleRepository(),
			Applications:  memory.NewApplicationRepository(),
			Opportunities: memory.NewOpportunityRepository(),
			Verifications: memory.NewSkillVerificationRepository(),
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, c.Config.Database, c.Logger)
	if err != nil {
		return err
	}
	c.DB = db
	c.Repos = Repositories{
		Users:         repository.NewPostgresUserRepository(db),
		Roles:         repository.NewPostgresRoleRepository(db),
		Applications:  repository.NewPostgresApplicationRepository(db),
		Opportunities: repository.NewPostgresOpportunityRepository(db),
		Verifications: repository.NewPostgresSkillVerificationRepository(db),
	}
	return nil
}

// openStore prefers Redis. A Redis that is unreachable at startup is
// replaced by the process-local store so OTPs and scan locks keep working.
func (c *Container) openStore() {
	rc := cache.NewRedis(c.Config.Redis, c.Logger)
	if rc.Available() {
		c.Redis = rc
		c.Store = rc
		return
	}
	c.Store = cache.NewMemory(c.Config.Redis.TTL)
}

func (c *Container) openAI(ctx context.Context) error {
	gen, err := ai.NewGeminiGenerator(ctx, c.Config.AI, c.Logger)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		c.Logger.Warn("GEMINI_API_KEYS not set, AI features disabled")
		return nil
	case err != nil:
		return fmt.Errorf("init ai: %w", err)
	}
	c.AI = gen
	return nil
}

// Migrate applies schema migrations from dir, or the embedded set when dir
// is empty, and returns how many ran. It is a no-op without a database.
func (c *Container) Migrate(ctx context.Context, dir string) (int, error) {
	if c == nil || c.DB == nil {
		return 0, nil
	}
	logger := c.Logger.Named("migration")
	r := migration.New(migrations.FS, logger)
	if dir != "" {
		var err error
		if r, err = migration.FromDir(dir, logger); err != nil {
			return 0, err
		}
	}
	applied, err := r.Run(ctx, c.DB.SQLDB())
	return len(applied), err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
