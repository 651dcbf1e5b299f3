package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

type PostgresSkillVerificationRepository struct {
	db database.DB
}

func NewPostgresSkillVerificationRepository(db database.DB) *PostgresSkillVerificationRepository {
	return &PostgresSkillVerificationRepository{db: db}
}

func (r *PostgresSkillVerificationRepository) Create(ctx context.Context, v skill.VerificationRequest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO skill_verifications (id, user_id, skill_name, evidence_url, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.UserID, v.SkillName, v.EvidenceURL, v.Status, v.CreatedAt,
	)
	return err
}

func (r *PostgresSkillVerificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]skill.VerificationRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_name, evidence_url, status, created_at
		 FROM skill_verifications WHERE user_id = $1
		 ORDER BY created_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.VerificationRequest, 0)
	for rows.Next() {
		var v skill.VerificationRequest
		if err := rows.Scan(&v.ID, &v.UserID, &v.SkillName, &v.EvidenceURL, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
