package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"skillsync/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

var (
	ErrNotConfigured = errors.New("ai service not configured")
	ErrEmptyResponse = errors.New("gemini api returned empty response")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// contentModel is the slice of *genai.Models the generator needs.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator holds one client per API key and moves to the next key
// whenever a call fails. The key that last succeeded is tried first.
type GeminiGenerator struct {
	models    []contentModel
	modelName string
	logger    *zap.Logger

	mu      sync.Mutex
	current int
}

func NewGeminiGenerator(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var models []contentModel
	for _, key := range cfg.GeminiAPIKeys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		models = append(models, client.Models)
	}
	if len(models) == 0 {
		return nil, ErrNotConfigured
	}

	return newGeminiGenerator(models, cfg.GeminiModel, logger), nil
}

func newGeminiGenerator(models []contentModel, model string, logger *zap.Logger) *GeminiGenerator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiGenerator{models: models, modelName: model, logger: logger.Named("gemini")}
}

func (g *GeminiGenerator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || len(g.models) == 0 {
		return "", ErrNotConfigured
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.mu.Lock()
	start := g.current
	g.mu.Unlock()

	var lastErr error
	for i := 0; i < len(g.models); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		idx := (start + i) % len(g.models)

		out, err := generateText(ctx, g.models[idx], g.modelName, prompt)
		if err == nil {
			g.mu.Lock()
			g.current = idx
			g.mu.Unlock()
			return out, nil
		}
		lastErr = err
		g.logger.Warn("gemini call failed, rotating key", zap.Int("key_index", idx), zap.Error(err))
	}

	return "", fmt.Errorf("all %d gemini keys failed: %w", len(g.models), lastErr)
}

func generateText(ctx context.Context, m contentModel, model, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ErrEmptyResponse
	}
	return output, nil
}

// StripCodeFence removes markdown json fences models like to wrap output in.
func StripCodeFence(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
