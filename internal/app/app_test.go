package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func memoryConfig() config.Config {
	return config.Config{
		App:   config.AppConfig{AppName: "skillsync", Environment: "development", HTTPPort: "8080"},
		Redis: config.RedisConfig{TTL: time.Minute},
		JWT: config.JWTConfig{
			AccessSecret:     "access",
			RefreshSecret:    "refresh",
			AccessExpiresIn:  time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		HTTP: config.HTTPConfig{
			CORSAllowOrigins: []string{"http://localhost:5173"},
			FrontendURL:      "http://localhost:5173",
		},
	}
}

func TestNewContainer_FallsBackToMemory(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.AI)
	assert.Nil(t, c.Google)
	assert.IsType(t, &memory.UserRepository{}, c.Repos.Users)
	assert.IsType(t, &cache.Memory{}, c.Store)
	n, err := c.Migrate(context.Background(), "")
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestNew_ServesHealthAndAuth(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close()

	a := New(c)

	res, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	var health struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&health))
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "disabled", health.Data["database"])
	assert.Equal(t, "disabled", health.Data["redis"])

	body, _ := json.Marshal(map[string]string{
		"email": "ann@example.com", "password": "password123", "confirm_password": "password123", "name": "Ann", "role": "student",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err = a.Fiber.Test(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/recommendation/learning-path", bytes.NewReader([]byte(`{"target_role":"Backend"}`)))
	req.Header.Set("Content-Type", "application/json")
	res, err = a.Fiber.Test(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCORSConfig(t *testing.T) {
	c := corsConfig([]string{"http://localhost:5173"})
	assert.True(t, c.AllowCredentials)

	c = corsConfig([]string{"*"})
	assert.False(t, c.AllowCredentials)

	c = corsConfig(nil)
	assert.False(t, c.AllowCredentials)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9090 ")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr("")
	assert.Error(t, err)
}
