package repository

import (
	"context"
	"fmt"

	"skillsync/internal/database"
	"skillsync/internal/domain/opportunity"

	"github.com/google/uuid"
)

const opportunityColumns = `id, kind, title, provider, amount, deadline, url, description,
	match_score, tags, is_active, created_at`

type PostgresOpportunityRepository struct {
	db database.DB
}

func NewPostgresOpportunityRepository(db database.DB) *PostgresOpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

func (r *PostgresOpportunityRepository) Upsert(ctx context.Context, items []opportunity.Opportunity) ([]opportunity.Opportunity, error) {
	if len(items) == 0 {
		return []opportunity.Opportunity{}, nil
	}

	out := make([]opportunity.Opportunity, 0, len(items))
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, it := range items {
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			stored, err := scanOpportunity(tx.QueryRow(ctx,
				`INSERT INTO opportunities (id, kind, title, provider, amount, deadline, url, description, match_score, tags, is_active)
				 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
				 ON CONFLICT (kind, url) DO UPDATE SET
					title = EXCLUDED.title,
					provider = EXCLUDED.provider,
					amount = EXCLUDED.amount,
					deadline = EXCLUDED.deadline,
					description = EXCLUDED.description,
					match_score = EXCLUDED.match_score,
					tags = EXCLUDED.tags,
					is_active = EXCLUDED.is_active,
					updated_at = now()
				 RETURNING `+opportunityColumns,
				it.ID, string(it.Kind), it.Title, it.Provider, it.Amount, it.Deadline, it.URL, it.Description,
				it.MatchScore, nonNilStrings(it.Tags), it.IsActive,
			))
			if err != nil {
				return fmt.Errorf("upsert opportunity url=%s: %w", it.URL, err)
			}
			out = append(out, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOpportunityRepository) ListByKind(ctx context.Context, kind opportunity.Kind) ([]opportunity.Opportunity, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities
		 WHERE kind = $1 AND is_active = true
		 ORDER BY created_at ASC, id ASC`,
		string(kind),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]opportunity.Opportunity, 0)
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanOpportunity(row scanner) (opportunity.Opportunity, error) {
	var o opportunity.Opportunity
	var kind string
	err := row.Scan(
		&o.ID, &kind, &o.Title, &o.Provider, &o.Amount, &o.Deadline, &o.URL, &o.Description,
		&o.MatchScore, &o.Tags, &o.IsActive, &o.CreatedAt,
	)
	if err != nil {
		return opportunity.Opportunity{}, err
	}
	o.Kind = opportunity.Kind(kind)
	return o, nil
}
