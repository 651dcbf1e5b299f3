package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillsync/internal/database"
)

// EnsureSchema fails fast when the tables the seeders write to are missing
// columns, usually because migrations have not run.
func EnsureSchema(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "university", "company_name"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "student_skills", "user_id", "position", "name", "level", "verified", "category"); err != nil {
		return err
	}
	return EnsureTableColumns(ctx, db, "roles", "id", "title", "recruiter_id", "required_skills", "min_experience_years", "is_active")
}

// EnsureTableColumns reports every column of table that is missing from the
// public schema in a single error.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil || table == "" {
		return errors.New("ensure columns: db and table are required")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("list columns of %s: %w", table, err)
	}
	defer rows.Close()

	have := make(map[string]bool, len(columns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range columns {
		if !have[col] {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing %s", strings.Join(missing, ", "))
	}
	return nil
}
