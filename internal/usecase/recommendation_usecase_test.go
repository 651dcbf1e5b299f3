package usecase

import (
	"context"
	"errors"
	"testing"

	"skillsync/internal/infrastructure/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningPath(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + `[{"title":"Learn Go","description":"Tour of Go","priority":"High","estimated_weeks":2,"resource_link":"https://go.dev/tour"}]` + "\n```"}
	uc := NewRecommendationUsecase(gen, nil)

	path, err := uc.LearningPath(context.Background(), []string{"Python", " "}, "Backend Engineer")
	require.NoError(t, err)
	require.Len(t, path.Steps, 1)
	assert.Equal(t, "Learn Go", path.Steps[0].Title)
	assert.Equal(t, 2, path.Steps[0].EstimatedWeeks)
	assert.NotContains(t, path.RawResponse, "```")
	assert.Contains(t, gen.prompt, "Python.")
	assert.Contains(t, gen.prompt, "Backend Engineer")
}

func TestLearningPath_RejectsBadShape(t *testing.T) {
	gen := &fakeGenerator{text: `[{"title":"x","priority":"Urgent"}]`}
	_, err := NewRecommendationUsecase(gen, nil).LearningPath(context.Background(), nil, "goal")
	assert.ErrorIs(t, err, ErrAIResponse)

	gen.text = "I'm sorry, I can't do that"
	_, err = NewRecommendationUsecase(gen, nil).LearningPath(context.Background(), nil, "goal")
	assert.ErrorIs(t, err, ErrAIResponse)
}

func TestRecommendation_Unavailable(t *testing.T) {
	ctx := context.Background()

	_, err := NewRecommendationUsecase(nil, nil).SkillGap(ctx, []string{"Go"}, "SRE", "")
	assert.ErrorIs(t, err, ErrAIUnavailable)

	gen := &fakeGenerator{err: ai.ErrNotConfigured}
	_, err = NewRecommendationUsecase(gen, nil).SuggestOpportunities(ctx, "CS", nil)
	assert.ErrorIs(t, err, ErrAIUnavailable)

	gen = &fakeGenerator{err: errors.New("quota")}
	_, err = NewRecommendationUsecase(gen, nil).SuggestOpportunities(ctx, "CS", nil)
	assert.ErrorIs(t, err, ErrAIResponse)
}

func TestRecommendation_InputValidation(t *testing.T) {
	uc := NewRecommendationUsecase(&fakeGenerator{}, nil)
	ctx := context.Background()

	_, err := uc.LearningPath(ctx, nil, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.SuggestOpportunities(ctx, "", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.SkillGap(ctx, nil, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSkillGap(t *testing.T) {
	gen := &fakeGenerator{text: `{"missing_skills":["Kubernetes"],"action_plan":[]}`}
	gap, err := NewRecommendationUsecase(gen, nil).SkillGap(context.Background(), []string{"Go"}, "SRE", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes"}, gap.MissingSkills)
	assert.NotNil(t, gap.ActionPlan)
	assert.Contains(t, gen.prompt, "A university student")
}

func TestSuggestOpportunities(t *testing.T) {
	gen := &fakeGenerator{text: `[{"title":"Hack the North","details":"Hackathon","link":"https://hackthenorth.com","type":"Hackathon"}]`}
	out, err := NewRecommendationUsecase(gen, nil).SuggestOpportunities(context.Background(), "Computer Science", []string{"Go"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Hackathon", out[0].Type)
}
