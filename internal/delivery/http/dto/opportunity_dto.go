package dto

import (
	"time"

	"skillsync/internal/domain/opportunity"
	"skillsync/internal/usecase"

	"github.com/google/uuid"
)

type ScanRequest struct {
	Major  string   `json:"major" validate:"max=255"`
	GPA    float64  `json:"gpa" validate:"gte=0,lte=4"`
	Skills []string `json:"skills" validate:"max=50"`
}

func (r ScanRequest) Profile() usecase.ScanProfile {
	return usecase.ScanProfile{Major: r.Major, GPA: r.GPA, Skills: r.Skills}
}

type OpportunityResponse struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Provider    string    `json:"provider"`
	Amount      string    `json:"amount"`
	Deadline    string    `json:"deadline"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	MatchScore  int       `json:"match_score"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewOpportunityResponses(in []opportunity.Opportunity) []OpportunityResponse {
	out := make([]OpportunityResponse, 0, len(in))
	for _, o := range in {
		out = append(out, OpportunityResponse{
			ID:          o.ID,
			Kind:        string(o.Kind),
			Title:       o.Title,
			Provider:    o.Provider,
			Amount:      o.Amount,
			Deadline:    o.Deadline,
			URL:         o.URL,
			Description: o.Description,
			MatchScore:  o.MatchScore,
			Tags:        nonNil(o.Tags),
			CreatedAt:   o.CreatedAt,
		})
	}
	return out
}

type ScanAllResponse struct {
	Scholarships []OpportunityResponse `json:"scholarships"`
	Internships  []OpportunityResponse `json:"internships"`
}
