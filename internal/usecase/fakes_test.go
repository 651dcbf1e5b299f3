package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"skillsync/internal/domain/role"
	"skillsync/internal/domain/skill"
	"skillsync/internal/domain/user"
	"skillsync/internal/infrastructure/email"
	"skillsync/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type publishedEvent struct {
	name    string
	payload map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, _ := payload.(map[string]any)
	p.events = append(p.events, publishedEvent{name: event, payload: m})
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.name)
	}
	return out
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func seedStudent(t *testing.T, repo *memory.UserRepository, name string, skills ...string) user.User {
	t.Helper()
	u := user.User{
		ID:         uuid.New(),
		Email:      name + "@example.com",
		FullName:   name,
		Role:       user.RoleStudent,
		IsActive:   true,
		University: "State U",
	}
	for _, s := range skills {
		u.Skills = append(u.Skills, skill.Skill{Name: s, Level: 50, Category: skill.DefaultCategory})
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedRecruiter(t *testing.T, repo *memory.UserRepository, name string) user.User {
	t.Helper()
	u := user.User{
		ID:          uuid.New(),
		Email:       name + "@corp.example.com",
		FullName:    name,
		Role:        user.RoleIndustry,
		IsActive:    true,
		CompanyName: "Acme",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedRole(t *testing.T, repo *memory.RoleRepository, recruiterID uuid.UUID, title string, active bool, skills ...string) role.Role {
	t.Helper()
	r := role.Role{
		ID:             uuid.New(),
		Title:          title,
		CompanyName:    "Acme",
		RecruiterID:    recruiterID,
		Type:           role.TypeFullTime,
		IsActive:       active,
		RequiredSkills: skills,
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}
