package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mindcare/wellness-api/internal/config"
	"google.golang.org/genai"
)

type geminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiClient{client: client, model: model}, nil
}

func (c *geminiClient) GenerateJSON(ctx context.Context, system, user string, schema Schema, out interface{}) error {
	log := config.WithContext(ctx)

	shape, err := json.Marshal(schema.Definition)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	prompt := system + "\n\n" + user +
		"\n\nRespond with a single JSON object (" + schema.Description + ") matching this JSON schema:\n" + string(shape)

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](defaultTemperature),
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Gemini raw response for %s:\n%s", schema.Name, raw)
	return decode(raw, out)
}
