// Package migration applies versioned SQL files named V<version>__<name>.sql.
package migration

import (
	"cmp"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// lockKey serialises concurrent runners across processes.
const lockKey int64 = 88413532

var (
	ErrNoSource         = errors.New("migration: no source configured")
	ErrChecksumMismatch = errors.New("migration: applied file was modified")
)

var filenameRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type Runner struct {
	src    fs.FS
	logger *zap.Logger
}

// New returns a runner reading from src. A nil logger is replaced by zap.NewNop.
func New(src fs.FS, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{src: src, logger: logger}
}

// FromDir is New over a directory on disk.
func FromDir(dir string, logger *zap.Logger) (*Runner, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrNoSource
	}
	return New(os.DirFS(dir), logger), nil
}

// Run applies every pending migration and returns the ones it applied.
// All work happens on one connection holding a session advisory lock.
func (r *Runner) Run(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if db == nil {
		return nil, errors.New("migration: nil db")
	}
	if r == nil || r.src == nil {
		return nil, ErrNoSource
	}

	all, err := Load(r.src)
	if err != nil || len(all) == 0 {
		return nil, err
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration: acquire conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return nil, fmt.Errorf("migration: lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	if _, err := conn.ExecContext(ctx, createHistoryTable); err != nil {
		return nil, fmt.Errorf("migration: history table: %w", err)
	}

	applied, err := history(ctx, conn)
	if err != nil {
		return nil, err
	}
	pending, err := plan(all, applied)
	if err != nil {
		return nil, err
	}

	for i, m := range pending {
		if err := apply(ctx, conn, m); err != nil {
			return pending[:i], err
		}
		r.logger.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
	}
	return pending, nil
}

// Load reads and orders the migrations in the root of src. Files that do
// not match the naming scheme are ignored.
func Load(src fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(src, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		parts := filenameRe.FindStringSubmatch(e.Name())
		if parts == nil {
			continue
		}
		m, err := read(src, e.Name(), parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", out[i].Version, out[i-1].Filename, out[i].Filename)
		}
	}
	return out, nil
}

func read(src fs.FS, filename, version, name string) (Migration, error) {
	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("invalid migration version in %s: %w", filename, err)
	}
	b, err := fs.ReadFile(src, filename)
	if err != nil {
		return Migration{}, err
	}
	body := strings.TrimSpace(string(b))
	if body == "" {
		return Migration{}, fmt.Errorf("empty migration file: %s", filename)
	}
	sum := sha256.Sum256([]byte(body))
	return Migration{Version: v, Name: name, Filename: filename, SQL: body, Checksum: hex.EncodeToString(sum[:])}, nil
}

// plan returns the migrations missing from applied, failing if an applied
// version's checksum no longer matches its file.
func plan(all []Migration, applied map[int64]string) ([]Migration, error) {
	var pending []Migration
	for _, m := range all {
		sum, ok := applied[m.Version]
		switch {
		case !ok:
			pending = append(pending, m)
		case sum != m.Checksum:
			return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, m.Filename)
		}
	}
	return pending, nil
}

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func history(ctx context.Context, conn *sql.Conn) (map[int64]string, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("migration: read history: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]string)
	for rows.Next() {
		var (
			v   int64
			sum string
		)
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, err
		}
		applied[v] = sum
	}
	return applied, rows.Err()
}

func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
