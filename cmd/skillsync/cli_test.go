package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"skillsync/internal/app"
	"skillsync/internal/config"
	"skillsync/internal/database/seeder"
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/domain/user"
	"skillsync/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryEnv(t *testing.T) *env {
	t.Helper()
	cfg := config.Config{
		App:   config.AppConfig{AppName: "skillsync", Environment: "test", HTTPPort: "8080"},
		Redis: config.RedisConfig{TTL: time.Minute},
		JWT:   config.JWTConfig{AccessSecret: "a", RefreshSecret: "r", AccessExpiresIn: time.Minute, RefreshExpiresIn: time.Hour},
	}
	c, err := app.NewContainer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return newEnv(c)
}

func execute(t *testing.T, e *env, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(func(context.Context, bool) (*env, error) { return e, nil })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestMigrate_WithoutDatabase(t *testing.T) {
	out, _, err := execute(t, memoryEnv(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}

func TestSeedAndRank(t *testing.T) {
	e := memoryEnv(t)
	ctx := context.Background()

	out, stderr, err := execute(t, e, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "demo data seeded")
	assert.Contains(t, stderr, "in-memory")

	recruiter, err := e.container.Repos.Users.GetByEmail(ctx, "recruiter@techflow.com")
	require.NoError(t, err)
	roles, err := e.container.Repos.Roles.ListByRecruiter(ctx, recruiter.ID)
	require.NoError(t, err)
	require.Len(t, roles, 2)

	var backendID string
	for _, r := range roles {
		if r.Title == "Backend Developer" {
			backendID = r.ID.String()
		}
	}
	require.NotEmpty(t, backendID)

	out, _, err = execute(t, e, "rank", "role", backendID)
	require.NoError(t, err)
	var matches []dto.MatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Marcus Chen", matches[0].StudentName)
	assert.Equal(t, 66, matches[0].MatchPercentage)
	assert.Equal(t, []string{"SQL"}, matches[0].SkillsMissing)

	alexandra, err := e.container.Repos.Users.GetByEmail(ctx, "alexandra.rivera@university.edu")
	require.NoError(t, err)
	out, _, err = execute(t, e, "rank", "student", alexandra.ID.String())
	require.NoError(t, err)
	matches = nil
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Senior Frontend Engineer", matches[0].RoleTitle)
	assert.Equal(t, 50, matches[0].MatchPercentage)

	users, err := e.container.Repos.Users.ListByRole(ctx, user.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, users, 3, "re-seeding must not duplicate students")
}

func TestRank_DemoIDsResolveInFreshProcess(t *testing.T) {
	out, _, err := execute(t, memoryEnv(t), "seed")
	require.NoError(t, err)

	backendID := seeder.DemoRoleID("Backend Developer").String()
	marcusID := seeder.DemoUserID("marcus.chen@tech.edu").String()
	assert.Contains(t, out, "role    "+backendID+"  Backend Developer")
	assert.Contains(t, out, "student "+marcusID+"  Marcus Chen")

	// A second env shares nothing with the first, like a new CLI invocation.
	out, _, err = execute(t, memoryEnv(t), "rank", "role", backendID)
	require.NoError(t, err)
	var matches []dto.MatchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Marcus Chen", matches[0].StudentName)

	out, _, err = execute(t, memoryEnv(t), "rank", "student", marcusID)
	require.NoError(t, err)
	matches = nil
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "Backend Developer", matches[0].RoleTitle)
}

func TestRank_Errors(t *testing.T) {
	e := memoryEnv(t)

	_, _, err := execute(t, e, "rank", "student", "not-a-uuid")
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, _, err = execute(t, e, "rank", "role", "8a4f0f3e-4b5c-4a55-9d1b-2f8d0f7b6c11")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, _, err = execute(t, e, "rank", "role")
	assert.Error(t, err)
}
