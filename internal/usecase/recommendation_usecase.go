package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type LearningStep struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Priority       string `json:"priority"`
	EstimatedWeeks int    `json:"estimated_weeks"`
	ResourceLink   string `json:"resource_link"`
}

type LearningPath struct {
	Steps       []LearningStep
	RawResponse string
}

type OpportunitySuggestion struct {
	Title    string `json:"title"`
	Details  string `json:"details"`
	Link     string `json:"link"`
	Location string `json:"location"`
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
}

type SkillGap struct {
	MissingSkills []string `json:"missing_skills"`
	ActionPlan    []string `json:"action_plan"`
}

type RecommendationUsecase interface {
	LearningPath(ctx context.Context, skills []string, goal string) (LearningPath, error)
	SuggestOpportunities(ctx context.Context, course string, skills []string) ([]OpportunitySuggestion, error)
	SkillGap(ctx context.Context, currentSkills []string, targetRole, major string) (SkillGap, error)
}

type Recommendation struct {
	gen    TextGenerator
	logger *zap.Logger
}

func NewRecommendationUsecase(gen TextGenerator, logger *zap.Logger) *Recommendation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommendation{gen: gen, logger: logger.Named("recommendation")}
}

func (u *Recommendation) LearningPath(ctx context.Context, skills []string, goal string) (LearningPath, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return LearningPath{}, ErrInvalidInput
	}

	prompt := fmt.Sprintf(`Act as a career counselor.
Create a learning path for a student with these skills: %s.
Their goal is: %s.

Return a valid JSON array of objects. Do not include any markdown formatting or code blocks.
Each step must have:
- title
- description
- priority ("High", "Medium" or "Low")
- estimated_weeks (integer)
- resource_link (a valid URL to a reputable course like Coursera, Udemy, or documentation)`,
		strings.Join(cleanList(skills), ", "), goal)

	var steps []LearningStep
	raw, err := generateJSON(ctx, u.gen, prompt, learningPathSchema, &steps)
	if err != nil {
		u.logger.Warn("learning path generation failed", zap.Error(err))
		return LearningPath{}, err
	}
	return LearningPath{Steps: steps, RawResponse: raw}, nil
}

func (u *Recommendation) SuggestOpportunities(ctx context.Context, course string, skills []string) ([]OpportunitySuggestion, error) {
	course = strings.TrimSpace(course)
	if course == "" {
		return nil, ErrInvalidInput
	}

	prompt := fmt.Sprintf(`Act as a career advisor for university students.
Suggest up to 6 real, currently relevant scholarships, internships or hackathons for a student studying %s with these skills: %s.

Return a valid JSON array of objects. Do not include any markdown formatting or code blocks.
Each object must have: title, details, link, location, type (Scholarship, Internship or Hackathon), deadline.`,
		course, strings.Join(cleanList(skills), ", "))

	var out []OpportunitySuggestion
	if _, err := generateJSON(ctx, u.gen, prompt, opportunitySuggestionSchema, &out); err != nil {
		u.logger.Warn("opportunity suggestion failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (u *Recommendation) SkillGap(ctx context.Context, currentSkills []string, targetRole, major string) (SkillGap, error) {
	targetRole = strings.TrimSpace(targetRole)
	if targetRole == "" {
		return SkillGap{}, ErrInvalidInput
	}

	prompt := fmt.Sprintf(`Act as a technical recruiter.
A %s student has these skills: %s.
They want to become: %s.

Return a valid JSON object. Do not include any markdown formatting or code blocks.
The object must have:
- missing_skills (array of strings, the skills they still need)
- action_plan (array of short, concrete steps to close the gap)`,
		pickDefault(strings.TrimSpace(major), "university"), strings.Join(cleanList(currentSkills), ", "), targetRole)

	var gap SkillGap
	if _, err := generateJSON(ctx, u.gen, prompt, skillGapSchema, &gap); err != nil {
		u.logger.Warn("skill gap analysis failed", zap.Error(err))
		return SkillGap{}, err
	}
	if gap.MissingSkills == nil {
		gap.MissingSkills = []string{}
	}
	if gap.ActionPlan == nil {
		gap.ActionPlan = []string{}
	}
	return gap, nil
}

func pickDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
