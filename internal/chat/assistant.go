package chat

import (
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/llm"
)

const systemPrompt = "You are a mental care assistant. Reply in the same language as the user."

var promptTemplate = template.Must(template.New("chat").Parse(`You are a mental care assistant. Your task is to provide empathetic and supportive responses to users based on their current mood and message history.
Make sure to consider the user's current mood and previous messages in your response. And make sure the response is in the same language as the user's message.
Make the user feel better and provide helpful suggestions.

This is the user provided information:
user_name: {{.UserName}}
current_mood: {{.CurrentMood}}
Here is the message history:
{{.History}}
Here is the user's message:
{{.Message}}

NOTE: If the user asks non mental care related questions, answer concisely that you are a mental care assistant and can only answer mental care related questions.
`))

var replySchema = llm.Schema{
	Name:        "submit_response",
	Description: "Submit the reply to the user",
	Definition: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"response": map[string]interface{}{
				"type":        "string",
				"description": "Response from the mental care assistant",
			},
		},
		"required": []string{"response"},
	},
}

// Prompt is everything the assistant sees for one reply.
type Prompt struct {
	UserName    string
	CurrentMood string
	History     []Message
	Message     string
}

type Assistant interface {
	Reply(ctx context.Context, p Prompt) (string, error)
}

type llmAssistant struct {
	client llm.Client
}

func NewAssistant(client llm.Client) Assistant {
	return &llmAssistant{client: client}
}

// FormatHistory renders history as <im_start>Role: message<im_end> lines.
// Items without a message are skipped and a missing role means the user.
func FormatHistory(history []Message) string {
	lines := make([]string, 0, len(history))
	for _, item := range history {
		if item.Message == "" {
			continue
		}
		role := strings.TrimSpace(item.Role)
		if role == "" {
			role = "user"
		}
		role = strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
		lines = append(lines, "<im_start>"+role+": "+item.Message+"<im_end>")
	}
	return strings.Join(lines, "\n")
}

func (a *llmAssistant) Reply(ctx context.Context, p Prompt) (string, error) {
	log := config.WithContext(ctx)

	if p.UserName == "" {
		p.UserName = "User"
	}
	if p.CurrentMood == "" {
		p.CurrentMood = "neutral"
	}

	var sb strings.Builder
	err := promptTemplate.Execute(&sb, map[string]string{
		"UserName":    p.UserName,
		"CurrentMood": p.CurrentMood,
		"History":     FormatHistory(p.History),
		"Message":     p.Message,
	})
	if err != nil {
		return "", err
	}

	var out ChatResponse
	if err := a.client.GenerateJSON(ctx, systemPrompt, sb.String(), replySchema, &out); err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", nil
		}
		log.WithError(err).Error("Chat model request failed")
		return "", err
	}
	return strings.TrimSpace(out.Response), nil
}
