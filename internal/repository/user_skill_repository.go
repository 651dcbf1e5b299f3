package repository

import (
	"context"

	"skillsync/internal/database"
	"skillsync/internal/domain/skill"

	"github.com/google/uuid"
)

func replaceStudentSkills(ctx context.Context, q database.Querier, userID uuid.UUID, skills []skill.Skill) error {
	if _, err := q.Exec(ctx, `DELETE FROM student_skills WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for i, s := range skills {
		_, err := q.Exec(ctx,
			`INSERT INTO student_skills (user_id, position, name, level, verified, category)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, i, s.Name, s.Level, s.Verified, s.Category,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func loadStudentSkills(ctx context.Context, q database.Querier, userIDs []uuid.UUID) (map[uuid.UUID][]skill.Skill, error) {
	out := make(map[uuid.UUID][]skill.Skill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}

	rows, err := q.Query(ctx,
		`SELECT user_id, name, level, verified, category
		 FROM student_skills
		 WHERE user_id = ANY($1::uuid[])
		 ORDER BY user_id, position ASC`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid uuid.UUID
		var s skill.Skill
		if err := rows.Scan(&uid, &s.Name, &s.Level, &s.Verified, &s.Category); err != nil {
			return nil, err
		}
		out[uid] = append(out[uid], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
