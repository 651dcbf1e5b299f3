package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"skillsync/internal/infrastructure/ai"

	"github.com/xeipuuv/gojsonschema"
)

// TextGenerator is the generative AI port. A nil generator means the
// service is not configured.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const learningPathSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "description", "priority", "estimated_weeks", "resource_link"],
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "priority": {"type": "string", "enum": ["High", "Medium", "Low"]},
      "estimated_weeks": {"type": "integer", "minimum": 0},
      "resource_link": {"type": "string"}
    }
  }
}`

const skillGapSchema = `{
  "type": "object",
  "required": ["missing_skills", "action_plan"],
  "properties": {
    "missing_skills": {"type": "array", "items": {"type": "string"}},
    "action_plan": {"type": "array", "items": {"type": "string"}}
  }
}`

const opportunitySuggestionSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title", "details", "link"],
    "properties": {
      "title": {"type": "string", "minLength": 1},
      "details": {"type": "string"},
      "link": {"type": "string"},
      "location": {"type": "string"},
      "type": {"type": "string"},
      "deadline": {"type": "string"}
    }
  }
}`

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*gojsonschema.Schema{}
)

func compiledSchema(src string) (*gojsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if s, ok := schemaCache[src]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, err
	}
	schemaCache[src] = s
	return s, nil
}

// generateJSON runs prompt through gen, checks the answer against schema and
// decodes it into out. It returns the cleaned raw text either way.
func generateJSON(ctx context.Context, gen TextGenerator, prompt, schema string, out any) (string, error) {
	if gen == nil {
		return "", ErrAIUnavailable
	}

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return "", ErrAIUnavailable
		}
		return "", fmt.Errorf("%w: %v", ErrAIResponse, err)
	}
	raw := ai.StripCodeFence(text)

	s, err := compiledSchema(schema)
	if err != nil {
		return raw, ErrInternal
	}
	result, err := s.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return raw, fmt.Errorf("%w: not json: %v", ErrAIResponse, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return raw, fmt.Errorf("%w: %s", ErrAIResponse, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return raw, fmt.Errorf("%w: %v", ErrAIResponse, err)
	}
	return raw, nil
}
