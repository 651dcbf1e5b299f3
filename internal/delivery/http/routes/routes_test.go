package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillsync/internal/delivery/http/handler"
	"skillsync/internal/delivery/http/middleware"
	v1 "skillsync/internal/delivery/http/routes/v1"
	"skillsync/internal/domain/matching"
	"skillsync/internal/domain/opportunity"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/infrastructure/email"
	"skillsync/internal/pkg/jwt"
	"skillsync/internal/repository/memory"
	"skillsync/internal/scraper"
	"skillsync/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubScholarships struct{}

func (stubScholarships) Scan(context.Context, scraper.Profile) []opportunity.Opportunity {
	return []opportunity.Opportunity{{Kind: opportunity.KindScholarship, Title: "Fallback", URL: "https://www.scholarships.com", MatchScore: 85, IsActive: true}}
}

type stubInternships struct{}

func (stubInternships) Scan(context.Context, scraper.Profile) ([]opportunity.Opportunity, error) {
	return []opportunity.Opportunity{{Kind: opportunity.KindInternship, Title: "Go Intern", URL: "https://jobs.example.com/1", MatchScore: 80, IsActive: true}}, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type api struct {
	t   *testing.T
	app *fiber.App
}

func newAPI(t *testing.T) api {
	t.Helper()
	logger := zaptest.NewLogger(t)

	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	apps := memory.NewApplicationRepository()
	jwtSvc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	mailer := email.LogSender{Logger: logger}
	tokens := cache.NewMemory(time.Minute)

	userUC := usecase.NewUserUsecase(users)
	aiUC := usecase.NewRecommendationUsecase(nil, logger)

	handlers := v1.Handlers{
		Auth:           handler.NewAuthHandler(usecase.NewAuthUsecase(usecase.AuthDeps{Users: users, JWT: jwtSvc, Tokens: tokens, Mailer: mailer, Logger: logger})),
		User:           handler.NewUserHandler(userUC),
		Student:        handler.NewStudentHandler(userUC),
		Match:          handler.NewMatchHandler(usecase.NewMatchingUsecase(users, roles, matching.NewRanker())),
		Industry:       handler.NewIndustryHandler(usecase.NewIndustryUsecase(users, roles, apps, nil, logger)),
		Application:    handler.NewApplicationHandler(usecase.NewApplicationUsecase(users, roles, apps, nil)),
		Skill:          handler.NewSkillHandler(usecase.NewSkillUsecase(users, memory.NewSkillVerificationRepository()), aiUC),
		Recommendation: handler.NewRecommendationHandler(aiUC),
		Opportunity: handler.NewOpportunityHandler(usecase.NewOpportunityUsecase(usecase.OpportunityDeps{
			Repo:         memory.NewOpportunityRepository(),
			Scholarships: stubScholarships{},
			Internships:  stubInternships{},
			Cache:        tokens,
			CacheTTL:     time.Minute,
			Logger:       logger,
		})),
		Communication: handler.NewCommunicationHandler(usecase.NewCommunicationUsecase(mailer, logger)),
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	NewRegistry(handler.NewHealthHandler(nil, nil), handlers, middleware.NewAuthMiddleware(jwtSvc).Middleware(), nil).Register(app)
	return api{t: t, app: app}
}

func (a api) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := a.app.Test(req)
	require.NoError(a.t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func (a api) register(email, name, role string) (token, id string) {
	a.t.Helper()
	status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": email, "password": "password123", "confirm_password": "password123", "name": name, "role": role,
	})
	require.Equal(a.t, http.StatusCreated, status, env.Message)
	var tok struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &tok))
	require.Equal(a.t, "bearer", tok.TokenType)
	return tok.AccessToken, tok.UserID
}

func TestAuthAndProfileFlow(t *testing.T) {
	a := newAPI(t)

	status, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "ann@example.com", "password": "password123", "confirm_password": "nope", "name": "Ann", "role": "student",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Passwords do not match", env.Message)

	status, env = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "root@example.com", "password": "password123", "confirm_password": "password123", "name": "Root", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(env.Data), `"field":"role"`)

	token, _ := a.register("ann@example.com", "Ann", "student")

	status, _ = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email": "ANN@example.com", "password": "password123", "confirm_password": "password123", "name": "Ann", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = a.do(http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env = a.do(http.MethodGet, "/api/v1/users/me/completeness", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"is_verified":false,"is_profile_complete":false,"missing_fields":["university","major","skills"]}`, string(env.Data))

	status, env = a.do(http.MethodPatch, "/api/v1/users/me", token, map[string]any{
		"university": "State U",
		"major":      "Computer Science",
		"skills":     []map[string]any{{"name": "React", "level": 70}},
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = a.do(http.MethodPatch, "/api/v1/users/me", token, map[string]any{"gpa": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, string(env.Data), `"field":"gpa"`)

	status, _ = a.do(http.MethodPost, "/api/v1/users/me/skills", token, map[string]any{"name": "react", "level": 40})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = a.do(http.MethodPost, "/api/v1/users/me/skills", token, map[string]any{"name": "TypeScript", "level": 40})
	assert.Equal(t, http.StatusCreated, status)

	status, env = a.do(http.MethodGet, "/api/v1/users/me/completeness", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"is_profile_complete":true`)

	status, env = a.do(http.MethodGet, "/api/v1/students/search?query=ANN", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "ann@example.com")
}

func TestRecruiterFlow(t *testing.T) {
	a := newAPI(t)
	student, studentID := a.register("ann@example.com", "Ann", "student")
	recruiter, _ := a.register("rita@corp.com", "Rita", "industry")

	status, _ := a.do(http.MethodPatch, "/api/v1/users/me", student, map[string]any{
		"skills": []map[string]any{{"name": "React", "level": 70}, {"name": "TypeScript", "level": 60}, {"name": "Node.js", "level": 50}},
	})
	require.Equal(t, http.StatusOK, status)

	role := map[string]any{"title": "Frontend", "company_name": "Acme", "type": "full_time", "required_skills": []string{"React", "TypeScript", "CSS", "REST APIs"}}
	status, _ = a.do(http.MethodPost, "/api/v1/industry/roles", student, role)
	assert.Equal(t, http.StatusForbidden, status)

	status, env := a.do(http.MethodPost, "/api/v1/industry/roles", recruiter, role)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	status, env = a.do(http.MethodGet, "/api/v1/matches/roles/"+created.ID, recruiter, nil)
	require.Equal(t, http.StatusOK, status)
	var matches []struct {
		StudentID       string   `json:"student_id"`
		MatchPercentage int      `json:"match_percentage"`
		SkillsMissing   []string `json:"skills_missing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, studentID, matches[0].StudentID)
	assert.Equal(t, 50, matches[0].MatchPercentage)
	assert.Equal(t, []string{"CSS", "REST APIs"}, matches[0].SkillsMissing)

	status, _ = a.do(http.MethodGet, "/api/v1/matches/students/"+created.ID, recruiter, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = a.do(http.MethodPost, "/api/v1/applications/roles/"+created.ID, recruiter, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = a.do(http.MethodPost, "/api/v1/applications/roles/"+created.ID, student, map[string]any{"cover_letter": "hi"})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var app struct {
		ID         string `json:"id"`
		MatchScore int    `json:"match_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &app))
	assert.Equal(t, 50, app.MatchScore)

	status, _ = a.do(http.MethodPost, "/api/v1/applications/roles/"+created.ID, student, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = a.do(http.MethodPut, "/api/v1/industry/applications/"+app.ID+"/status", recruiter, map[string]any{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = a.do(http.MethodPut, "/api/v1/industry/applications/"+app.ID+"/status", recruiter, map[string]any{"status": "interview"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"status":"interview"`)

	status, env = a.do(http.MethodPost, "/api/v1/communication/message", recruiter, map[string]any{
		"student_email": "ann@example.com", "student_name": "Ann", "message": "Let's talk",
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Message sent to Ann"}`, string(env.Data))

	status, _ = a.do(http.MethodPost, "/api/v1/communication/message", student, map[string]any{
		"student_email": "ann@example.com", "message": "hi",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAIUnavailable(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("ann@example.com", "Ann", "student")

	status, env := a.do(http.MethodPost, "/api/v1/recommendation/learning-path", token, map[string]any{"skills": []string{"Go"}, "goal": "SRE"})
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "AI service not configured", env.Message)

	status, _ = a.do(http.MethodPost, "/api/v1/skills/gap-analysis", token, map[string]any{"target_role": ""})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOpportunityScanAndHealth(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("ann@example.com", "Ann", "student")

	status, env := a.do(http.MethodPost, "/api/v1/opportunities/scan", token, map[string]any{"major": "CS", "gpa": 3.5, "skills": []string{"Go"}})
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), "Go Intern")
	assert.Contains(t, string(env.Data), "Fallback")

	status, env = a.do(http.MethodGet, "/api/v1/internships", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "Go Intern")

	status, env = a.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","database":"disabled","redis":"disabled"}`, string(env.Data))
}
