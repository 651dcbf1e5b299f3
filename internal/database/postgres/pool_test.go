package postgres

import (
	"context"
	"testing"
	"time"

	"skillsync/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN_QuotesSpecialValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "skillsync",
		DBPassword: "p@ss word's",
		DBName:     "skillsync",
		DBSSLMode:  "disable",
	})

	assert.Equal(t, `host=db port=5432 user=skillsync password='p@ss word\'s' dbname=skillsync sslmode=disable`, dsn)

	pcfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	assert.Equal(t, "p@ss word's", pcfg.ConnConfig.Password)
	assert.Equal(t, "db", pcfg.ConnConfig.Host)
}

func TestDSN_EmptyValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{DBHost: "localhost"})
	assert.Contains(t, dsn, "password=''")
}

func TestPoolConfig_AppliesOverrides(t *testing.T) {
	pcfg, err := poolConfig(config.DatabaseConfig{
		DBHost:              "localhost",
		DBPort:              "5432",
		DBName:              "skillsync",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        4,
		PoolMinConns:        8,
		PoolMaxConnIdleTime: time.Minute,
	})
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, pcfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, int32(4), pcfg.MaxConns)
	assert.Equal(t, int32(4), pcfg.MinConns, "min conns is capped at max")
	assert.Equal(t, time.Minute, pcfg.MaxConnIdleTime)
}

func TestPool_ClosedReportsErrClosed(t *testing.T) {
	var p Pool
	ctx := context.Background()

	assert.ErrorIs(t, p.Ping(ctx), ErrClosed)
	_, err := p.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = p.Begin(ctx)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, p.QueryRow(ctx, "SELECT 1").Scan(), ErrClosed)
	assert.NoError(t, p.Close())
}
