// Package postgres backs database.DB with a pgx connection pool.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillsync/internal/config"
	"skillsync/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const defaultPingTimeout = 5 * time.Second

var ErrClosed = errors.New("postgres: pool is closed")

// pgxQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Pool struct {
	querier
	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// DSN renders cfg as a keyword/value connection string, quoting values that
// contain spaces, quotes or backslashes.
func DSN(cfg config.DatabaseConfig) string {
	kv := [][2]string{
		{"host", cfg.DBHost},
		{"port", cfg.DBPort},
		{"user", cfg.DBUser},
		{"password", cfg.DBPassword},
		{"dbname", cfg.DBName},
		{"sslmode", cfg.DBSSLMode},
	}

	var b strings.Builder
	for i, p := range kv {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(dsnValue(p[1]))
	}
	return b.String()
}

func dsnValue(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return "''"
	case strings.ContainsAny(v, ` '\`):
		return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(v) + "'"
	default:
		return v
	}
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pcfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	setIfPositive(&pcfg.ConnConfig.ConnectTimeout, cfg.ConnectTimeout)
	setIfPositive(&pcfg.MaxConnLifetime, cfg.PoolMaxConnLifetime)
	setIfPositive(&pcfg.MaxConnIdleTime, cfg.PoolMaxConnIdleTime)
	setIfPositive(&pcfg.HealthCheckPeriod, cfg.PoolHealthCheckPeriod)
	setIfPositive(&pcfg.MaxConns, cfg.PoolMaxConns)
	setIfPositive(&pcfg.MinConns, cfg.PoolMinConns)
	if pcfg.MinConns > pcfg.MaxConns {
		pcfg.MinConns = pcfg.MaxConns
	}
	return pcfg, nil
}

func setIfPositive[T int32 | time.Duration](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}

// Connect opens the pool and pings it. The ping gets its own timeout when
// ctx carries no deadline.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Pool, error) {
	pcfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres %s/%s: %w", cfg.DBHost, cfg.DBName, err)
	}

	if logger != nil {
		logger.Info("postgres connected",
			zap.String("host", cfg.DBHost),
			zap.String("database", cfg.DBName),
			zap.Int32("max_conns", pcfg.MaxConns),
			zap.Int32("min_conns", pcfg.MinConns),
		)
	}

	return &Pool{querier: querier{q: p}, pool: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

func (p *Pool) Ping(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return ErrClosed
	}
	return p.pool.Ping(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.pool == nil {
		return nil
	}
	var err error
	if p.sqlDB != nil {
		err = p.sqlDB.Close()
	}
	p.pool.Close()
	p.pool = nil
	p.querier = querier{}
	return err
}

func (p *Pool) Begin(ctx context.Context) (database.Tx, error) {
	if p == nil || p.pool == nil {
		return nil, ErrClosed
	}
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return txn{querier: querier{q: tx}, tx: tx}, nil
}

func (p *Pool) SQLDB() *sql.DB {
	if p == nil {
		return nil
	}
	return p.sqlDB
}

type txn struct {
	querier
	tx pgx.Tx
}

func (t txn) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t txn) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

// querier adapts a pgx pool or transaction to database.Querier. A zero
// querier reports ErrClosed.
type querier struct {
	q pgxQuerier
}

func (c querier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if c.q == nil {
		return 0, ErrClosed
	}
	tag, err := c.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (c querier) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if c.q == nil {
		return nil, ErrClosed
	}
	rows, err := c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c querier) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if c.q == nil {
		return errRow{err: ErrClosed}
	}
	return c.q.QueryRow(ctx, query, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

var (
	_ database.DB = (*Pool)(nil)
	_ database.Tx = txn{}
)
