package aiquiz

import (
	"github.com/mindcare/wellness-api/internal/llm"
)

type AIQuizContainer struct {
	Agent   *Agent
	Handler *Handler
}

func NewAIQuizContainer(client llm.Client, opts ...Option) (*AIQuizContainer, error) {
	prompts, err := LoadPrompts()
	if err != nil {
		return nil, err
	}

	agent := NewAgent(
		NewLLMQuestionGenerator(client, prompts),
		NewLLMFinalizer(client, prompts),
		opts...,
	)
	service := NewService(agent)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Agent:   agent,
		Handler: handler,
	}, nil
}
