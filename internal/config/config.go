package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AI       AIConfig
	Email    EmailConfig
	Google   GoogleConfig
	HTTP     HTTPConfig
	Scraper  ScraperConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// Enabled reports whether a Postgres host is configured. Without one the
// server falls back to in-memory repositories.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type AIConfig struct {
	GeminiAPIKeys []string
	GeminiModel   string
	Timeout       time.Duration
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type GoogleConfig struct {
	ClientID string
}

type HTTPConfig struct {
	CORSAllowOrigins []string
	FrontendURL      string
}

type ScraperConfig struct {
	ScholarshipBaseURL  string
	InternshipSearchURL string
	ChromeBin           string
	Timeout             time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

const (
	devAccessSecret  = "skillsync-dev-access-secret"
	devRefreshSecret = "skillsync-dev-refresh-secret"
)

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if file := strings.TrimSpace(os.Getenv("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		TTL:      seconds(v.GetInt("REDIS_TTL")),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  v.GetDuration("JWT_ACCESS_EXPIRES_IN"),
		RefreshExpiresIn: v.GetDuration("JWT_REFRESH_EXPIRES_IN"),
	}
	if cfg.App.IsProduction() {
		if cfg.JWT.AccessSecret == "" {
			missing = append(missing, "JWT_ACCESS_SECRET")
		}
		if cfg.JWT.RefreshSecret == "" {
			missing = append(missing, "JWT_REFRESH_SECRET")
		}
	} else {
		if cfg.JWT.AccessSecret == "" {
			cfg.JWT.AccessSecret = devAccessSecret
		}
		if cfg.JWT.RefreshSecret == "" {
			cfg.JWT.RefreshSecret = devRefreshSecret
		}
	}

	cfg.AI = AIConfig{
		GeminiAPIKeys: splitList(opt("GEMINI_API_KEYS")),
		GeminiModel:   opt("GEMINI_MODEL"),
		Timeout:       v.GetDuration("AI_TIMEOUT"),
	}
	if len(cfg.AI.GeminiAPIKeys) == 0 {
		cfg.AI.GeminiAPIKeys = splitList(opt("GEMINI_API_KEY"))
	}

	cfg.Email = EmailConfig{
		SendGridAPIKey: opt("SENDGRID_API_KEY"),
		FromEmail:      opt("SENDGRID_FROM_EMAIL"),
		FromName:       opt("SENDGRID_FROM_NAME"),
	}

	cfg.Google = GoogleConfig{ClientID: opt("GOOGLE_CLIENT_ID")}

	cfg.HTTP = HTTPConfig{
		CORSAllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS")),
		FrontendURL:      strings.TrimRight(opt("FRONTEND_URL"), "/"),
	}

	cfg.Scraper = ScraperConfig{
		ScholarshipBaseURL:  strings.TrimRight(opt("SCHOLARSHIP_BASE_URL"), "/"),
		InternshipSearchURL: opt("INTERNSHIP_SEARCH_URL"),
		ChromeBin:           opt("CHROME_BIN"),
		Timeout:             v.GetDuration("SCRAPER_TIMEOUT"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("DB_POOL_MAX_CONNS", 10)

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TTL", 600)

	v.SetDefault("JWT_ACCESS_EXPIRES_IN", 15*time.Minute)
	v.SetDefault("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour)

	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("AI_TIMEOUT", 60*time.Second)

	v.SetDefault("SENDGRID_FROM_EMAIL", "noreply@skillsync.app")
	v.SetDefault("SENDGRID_FROM_NAME", "SkillSync")

	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,https://skillsync-edu.vercel.app")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")

	v.SetDefault("SCHOLARSHIP_BASE_URL", "https://www.scholarships.com")
	v.SetDefault("INTERNSHIP_SEARCH_URL", "https://html.duckduckgo.com/html/")
	v.SetDefault("SCRAPER_TIMEOUT", 45*time.Second)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
