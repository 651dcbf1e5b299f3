package repository

import (
	"context"
	"time"

	"skillsync/internal/database"
	"skillsync/internal/domain/application"

	"github.com/google/uuid"
)

const applicationColumns = `id, student_id, role_id, status, applied_at, match_score, cover_letter`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, student_id, role_id, status, applied_at, match_score, cover_letter)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.StudentID, a.RoleID, string(a.Status), a.AppliedAt, a.MatchScore, a.CoverLetter,
	)
	if err != nil && isUniqueViolation(err) {
		return application.ErrAlreadyApplied
	}
	return err
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListByRole(ctx context.Context, roleID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE role_id = $1 ORDER BY applied_at ASC, id ASC`,
		roleID,
	)
}

func (r *PostgresApplicationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]application.Application, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC, id ASC`,
		studentID,
	)
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1 RETURNING `+applicationColumns,
		id, string(status),
	))
	if err != nil {
		if isNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplication(row scanner) (application.Application, error) {
	var a application.Application
	var status string
	if err := row.Scan(&a.ID, &a.StudentID, &a.RoleID, &status, &a.AppliedAt, &a.MatchScore, &a.CoverLetter); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}
