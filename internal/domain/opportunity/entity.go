package opportunity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindScholarship Kind = "scholarship"
	KindInternship  Kind = "internship"
)

// Opportunity is a scraped scholarship or internship listing. URL is unique
// per kind.
type Opportunity struct {
	ID          uuid.UUID
	Kind        Kind
	Title       string
	Provider    string
	Amount      string
	Deadline    string
	URL         string
	Description string
	MatchScore  int
	Tags        []string
	IsActive    bool
	CreatedAt   time.Time
}

type Repository interface {
	// Upsert inserts or refreshes items keyed by (kind, url) and returns the
	// stored rows in input order.
	Upsert(ctx context.Context, items []Opportunity) ([]Opportunity, error)
	ListByKind(ctx context.Context, kind Kind) ([]Opportunity, error)
}
