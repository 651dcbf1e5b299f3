package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"skillsync/internal/app"
	"skillsync/internal/config"
	"skillsync/internal/database/seeder"
	"skillsync/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type matchItem struct {
	RoleID          string   `json:"role_id"`
	RoleTitle       string   `json:"role_title"`
	StudentName     string   `json:"student_name"`
	MatchPercentage int      `json:"match_percentage"`
	SkillsMissing   []string `json:"skills_missing"`
}

// TestIntegration_Postgres_SeedLoginMatchApply runs the HTTP stack on the
// pgx repositories. It needs a disposable database.
func TestIntegration_Postgres_SeedLoginMatchApply(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c, err := app.NewContainer(ctx, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	_, err = c.Migrate(ctx, "")
	require.NoError(t, err)
	require.NoError(t, seeder.EnsureSchema(ctx, c.DB))
	require.NoError(t, seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, seeder.Store{
		Users:        c.Repos.Users,
		Roles:        c.Repos.Roles,
		HashPassword: auth.HashPassword,
	}))

	a := app.New(c)

	studentTok, studentID := login(t, a, "alexandra.rivera@university.edu")
	recruiterTok, _ := login(t, a, "recruiter@techflow.com")

	status, env := call(t, a, http.MethodGet, "/api/v1/matches/students/"+studentID, studentTok, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var roles []matchItem
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	require.NotEmpty(t, roles)
	assertSortedByScoreDesc(t, roles)

	var frontend matchItem
	for _, r := range roles {
		if r.RoleTitle == "Senior Frontend Engineer" {
			frontend = r
		}
	}
	require.NotEmpty(t, frontend.RoleID, "seeded frontend role must match the seeded React student")
	assert.Equal(t, 50, frontend.MatchPercentage)
	assert.Equal(t, []string{"CSS", "REST APIs"}, frontend.SkillsMissing)

	status, env = call(t, a, http.MethodGet, "/api/v1/matches/roles/"+frontend.RoleID, recruiterTok, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var students []matchItem
	require.NoError(t, json.Unmarshal(env.Data, &students))
	require.NotEmpty(t, students)
	assertSortedByScoreDesc(t, students)
	assert.Equal(t, "Alexandra Rivera", students[0].StudentName)

	// Applying twice is a conflict; the first attempt may also conflict on a
	// re-used database.
	status, _ = call(t, a, http.MethodPost, "/api/v1/applications/roles/"+frontend.RoleID, studentTok, map[string]any{})
	require.Contains(t, []int{http.StatusCreated, http.StatusConflict}, status)
	status, _ = call(t, a, http.MethodPost, "/api/v1/applications/roles/"+frontend.RoleID, studentTok, map[string]any{})
	assert.Equal(t, http.StatusConflict, status)

	status, env = call(t, a, http.MethodGet, "/api/v1/applications/me", studentTok, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), frontend.RoleID)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLSYNC_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSYNC_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	return config.Config{
		App: config.AppConfig{AppName: "SkillSync", Environment: "test", HTTPPort: "0"},
		Database: config.DatabaseConfig{
			DBHost:     host,
			DBPort:     port,
			DBName:     name,
			DBUser:     user,
			DBPassword: pass,
			DBSSLMode:  stringsOrDefault(ssl, "disable"),
		},
		Redis: config.RedisConfig{TTL: time.Minute},
		JWT: config.JWTConfig{
			AccessSecret:     stringsOrDefault(os.Getenv("SKILLSYNC_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
			RefreshSecret:    stringsOrDefault(os.Getenv("SKILLSYNC_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func login(t *testing.T, a *app.App, email string) (token, userID string) {
	t.Helper()

	status, env := call(t, a, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var out struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken, out.UserID
}

func call(t *testing.T, a *app.App, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := a.Fiber.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer res.Body.Close()

	var env semanticResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func assertSortedByScoreDesc(t *testing.T, items []matchItem) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].MatchPercentage, items[i].MatchPercentage, "not sorted at %d", i)
	}
}

func stringsOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
