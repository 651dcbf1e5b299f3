package repository

import (
	"context"
	"fmt"
	"strings"

	"skillsync/internal/database"
	"skillsync/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, email, password_hash, full_name, role, is_active, is_verified, avatar,
	university, major, gpa, graduation_year, experience_years,
	company_name, company_url, industry_type, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (
				id, email, password_hash, full_name, role, is_active, is_verified, avatar,
				university, major, gpa, graduation_year, experience_years,
				company_name, company_url, industry_type
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			u.ID, u.Email, u.PasswordHash, u.FullName, string(u.Role), u.IsActive, u.IsVerified, u.Avatar,
			u.University, u.Major, u.GPA, u.GraduationYear, u.ExperienceYears,
			u.CompanyName, u.CompanyURL, u.IndustryType,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return user.ErrEmailTaken
			}
			return err
		}

		if err := replaceStudentSkills(ctx, tx, u.ID, u.Skills); err != nil {
			return fmt.Errorf("insert skills: %w", err)
		}
		return nil
	})
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, strings.TrimSpace(email))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u user.User) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE users SET
				password_hash = $2, full_name = $3, role = $4, is_active = $5, is_verified = $6, avatar = $7,
				university = $8, major = $9, gpa = $10, graduation_year = $11, experience_years = $12,
				company_name = $13, company_url = $14, industry_type = $15, updated_at = now()
			 WHERE id = $1`,
			u.ID, u.PasswordHash, u.FullName, string(u.Role), u.IsActive, u.IsVerified, u.Avatar,
			u.University, u.Major, u.GPA, u.GraduationYear, u.ExperienceYears,
			u.CompanyName, u.CompanyURL, u.IndustryType,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return user.ErrNotFound
		}

		if err := replaceStudentSkills(ctx, tx, u.ID, u.Skills); err != nil {
			return fmt.Errorf("replace skills: %w", err)
		}
		return nil
	})
}

func (r *PostgresUserRepository) ListByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at ASC, id ASC`,
		string(role),
	)
}

func (r *PostgresUserRepository) SearchByRole(ctx context.Context, role user.Role, query string) ([]user.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE role = $1 AND (full_name ILIKE $2 OR email ILIKE $2)
		 ORDER BY created_at ASC, id ASC`,
		string(role), likePattern(query),
	)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	skills, err := loadStudentSkills(ctx, r.db, []uuid.UUID{u.ID})
	if err != nil {
		return user.User{}, err
	}
	u.Skills = skills[u.ID]
	return u, nil
}

func (r *PostgresUserRepository) list(ctx context.Context, query string, args ...any) ([]user.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
		ids = append(ids, u.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	skills, err := loadStudentSkills(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Skills = skills[out[i].ID]
	}
	return out, nil
}

func scanUser(row scanner) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.IsActive, &u.IsVerified, &u.Avatar,
		&u.University, &u.Major, &u.GPA, &u.GraduationYear, &u.ExperienceYears,
		&u.CompanyName, &u.CompanyURL, &u.IndustryType, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
