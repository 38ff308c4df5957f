package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mindcare/wellness-api/internal/config"
)

var (
	ErrEmptyResponse       = errors.New("llm returned an empty response")
	ErrUnsupportedProvider = errors.New("unsupported llm provider")
)

const (
	defaultTemperature = 0.5
	defaultMaxTokens   = 5000
)

// Schema describes the JSON object the model has to produce. Definition is
// a JSON schema object.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]interface{}
}

// Client asks a model for one JSON object matching schema and decodes it
// into out.
type Client interface {
	GenerateJSON(ctx context.Context, system, user string, schema Schema, out interface{}) error
}

// New builds the client for the provider named in settings.
func New(ctx context.Context, s *config.Settings) (Client, error) {
	switch s.LLMProvider {
	case "azure":
		return NewOpenAIClient(OpenAIConfig{
			APIKey:     s.AzureOpenAIKey,
			BaseURL:    s.AzureOpenAIEndpoint,
			Model:      s.AzureOpenAIDeployment,
			APIVersion: s.AzureOpenAIAPIVersion,
			Azure:      true,
		}), nil
	case "openai":
		return NewOpenAIClient(OpenAIConfig{
			APIKey: s.OpenAIKey,
			Model:  s.OpenAIModel,
		}), nil
	case "gemini":
		return NewGeminiClient(ctx, s.GeminiKey, s.GeminiModel)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, s.LLMProvider)
	}
}

func decode(raw string, out interface{}) error {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if clean == "" || clean == "null" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("decode llm json: %w", err)
	}
	return nil
}
