package aiquiz

import (
	"context"
	"errors"

	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/llm"
)

var questionSchema = llm.Schema{
	Name:        "submit_question",
	Description: "Submit one generated quiz question",
	Definition: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"question": map[string]interface{}{
				"type":        "string",
				"description": "The question text",
			},
			"possible_answers": map[string]interface{}{
				"type":        "object",
				"description": "Possible answers for the question",
				"properties": map[string]interface{}{
					"A": map[string]interface{}{"type": "string", "description": "Option A"},
					"B": map[string]interface{}{"type": "string", "description": "Option B"},
					"C": map[string]interface{}{"type": "string", "description": "Option C"},
					"D": map[string]interface{}{"type": "string", "description": "Option D"},
				},
				"required": Labels,
			},
			"correct_answer": map[string]interface{}{
				"type":        "array",
				"description": "List of correct answers (can only contain A, B, C, or D)",
				"minItems":    1,
				"items": map[string]interface{}{
					"type": "string",
					"enum": Labels,
				},
			},
		},
		"required": []string{"question", "possible_answers", "correct_answer"},
	},
}

var titleSchema = llm.Schema{
	Name:        "submit_title_description",
	Description: "Submit the quiz title and description",
	Definition: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Title of the quiz",
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Description of the quiz",
			},
		},
		"required": []string{"title", "description"},
	},
}

type LLMQuestionGenerator struct {
	client  llm.Client
	prompts *Prompts
}

func NewLLMQuestionGenerator(client llm.Client, prompts *Prompts) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{client: client, prompts: prompts}
}

func (g *LLMQuestionGenerator) GenerateQuestion(ctx context.Context, req QuestionRequest) (*GeneratedQuestion, error) {
	log := config.WithContext(ctx)

	prompt, err := g.prompts.Question(req)
	if err != nil {
		return nil, err
	}

	var out GeneratedQuestion
	if err := g.client.GenerateJSON(ctx, g.prompts.System(), prompt, questionSchema, &out); err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, nil
		}
		return nil, err
	}

	log.Infof("Generated %s question: %s", req.QuestionType, out.Question)
	return &out, nil
}

type LLMFinalizer struct {
	client  llm.Client
	prompts *Prompts
}

func NewLLMFinalizer(client llm.Client, prompts *Prompts) *LLMFinalizer {
	return &LLMFinalizer{client: client, prompts: prompts}
}

func (f *LLMFinalizer) Finalize(ctx context.Context, req FinalizeRequest) (*TitleDescription, error) {
	prompt, err := f.prompts.Finalize(req)
	if err != nil {
		return nil, err
	}

	var out TitleDescription
	if err := f.client.GenerateJSON(ctx, f.prompts.System(), prompt, titleSchema, &out); err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
