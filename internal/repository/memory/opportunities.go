package memory

import (
	"context"
	"sync"
	"time"

	"skillsync/internal/domain/opportunity"

	"github.com/google/uuid"
)

type oppKey struct {
	kind opportunity.Kind
	url  string
}

// OpportunityRepository replaces the process-wide scholarship and
// internship lists with an explicit store keyed by (kind, url).
type OpportunityRepository struct {
	mu    sync.RWMutex
	items map[oppKey]opportunity.Opportunity
	order []oppKey
}

func NewOpportunityRepository() *OpportunityRepository {
	return &OpportunityRepository{items: map[oppKey]opportunity.Opportunity{}}
}

func (r *OpportunityRepository) Upsert(_ context.Context, items []opportunity.Opportunity) ([]opportunity.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]opportunity.Opportunity, 0, len(items))
	for _, it := range items {
		k := oppKey{kind: it.Kind, url: it.URL}
		if existing, ok := r.items[k]; ok {
			it.ID = existing.ID
			it.CreatedAt = existing.CreatedAt
		} else {
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			if it.CreatedAt.IsZero() {
				it.CreatedAt = time.Now().UTC()
			}
			r.order = append(r.order, k)
		}
		it.Tags = append([]string(nil), it.Tags...)
		r.items[k] = it
		out = append(out, it)
	}
	return out, nil
}

func (r *OpportunityRepository) ListByKind(_ context.Context, kind opportunity.Kind) ([]opportunity.Opportunity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]opportunity.Opportunity, 0)
	for _, k := range r.order {
		if k.kind != kind {
			continue
		}
		if it := r.items[k]; it.IsActive {
			out = append(out, it)
		}
	}
	return out, nil
}
