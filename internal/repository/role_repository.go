package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/role"

	"github.com/google/uuid"
)

const roleColumns = `id, title, company_name, recruiter_id, description, requirements, role_type,
	location, salary_range, is_active, required_skills, min_experience_years, created_at`

type PostgresRoleRepository struct {
	db database.DB
}

func NewPostgresRoleRepository(db database.DB) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

func (r *PostgresRoleRepository) Create(ctx context.Context, in role.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO roles (
			id, title, company_name, recruiter_id, description, requirements, role_type,
			location, salary_range, is_active, required_skills, min_experience_years
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		in.ID, in.Title, in.CompanyName, in.RecruiterID, in.Description, nonNilStrings(in.Requirements), string(in.Type),
		in.Location, in.SalaryRange, in.IsActive, nonNilStrings(in.RequiredSkills), in.MinExperienceYears,
	)
	return err
}

func (r *PostgresRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (role.Role, error) {
	out, err := scanRole(r.db.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return role.Role{}, role.ErrNotFound
		}
		return role.Role{}, err
	}
	return out, nil
}

func (r *PostgresRoleRepository) ListActive(ctx context.Context) ([]role.Role, error) {
	return r.list(ctx, `SELECT `+roleColumns+` FROM roles WHERE is_active = true ORDER BY created_at ASC, id ASC`)
}

func (r *PostgresRoleRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]role.Role, error) {
	return r.list(ctx,
		`SELECT `+roleColumns+` FROM roles WHERE recruiter_id = $1 ORDER BY created_at ASC, id ASC`,
		recruiterID,
	)
}

func (r *PostgresRoleRepository) list(ctx context.Context, query string, args ...any) ([]role.Role, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]role.Role, 0)
	for rows.Next() {
		item, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRole(row scanner) (role.Role, error) {
	var out role.Role
	var typ string
	err := row.Scan(
		&out.ID, &out.Title, &out.CompanyName, &out.RecruiterID, &out.Description, &out.Requirements, &typ,
		&out.Location, &out.SalaryRange, &out.IsActive, &out.RequiredSkills, &out.MinExperienceYears, &out.CreatedAt,
	)
	if err != nil {
		return role.Role{}, err
	}
	out.Type = role.Type(typ)
	return out, nil
}
