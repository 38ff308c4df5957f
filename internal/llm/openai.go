package llm

import (
	"context"
	"fmt"

	"github.com/mindcare/wellness-api/internal/config"
	"github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string

	// Azure switches to the Azure OpenAI wire format; Model is then the
	// deployment name.
	Azure      bool
	APIVersion string
}

type openAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg OpenAIConfig) Client {
	var clientCfg openai.ClientConfig
	if cfg.Azure {
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
		if cfg.APIVersion != "" {
			clientCfg.APIVersion = cfg.APIVersion
		}
		deployment := cfg.Model
		clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	} else {
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}

	return &openAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// GenerateJSON forces the model to call a single function whose parameters
// are the schema, and decodes the call arguments.
func (c *openAIClient) GenerateJSON(ctx context.Context, system, user string, schema Schema, out interface{}) error {
	log := config.WithContext(ctx)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: defaultTemperature,
			MaxTokens:   defaultMaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: system,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: user,
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        schema.Name,
						Description: schema.Description,
						Parameters:  schema.Definition,
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: schema.Name,
				},
			},
		},
	)
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ErrEmptyResponse
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		// Some deployments answer in content even when a tool is forced.
		log.Debug("No tool call in completion, falling back to message content")
		return decode(choice.Message.Content, out)
	}

	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != schema.Name {
		return fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	log.WithField("tokens", resp.Usage.TotalTokens).Debugf("Completion for %s received", schema.Name)
	return decode(toolCall.Function.Arguments, out)
}
