package aiquiz

import (
	"context"

	"github.com/mindcare/wellness-api/internal/config"
)

const maxPreviewQuestions = 10

// Generator is the behaviour of Agent other packages depend on.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type Service interface {
	Preview(ctx context.Context, dto PreviewDTO) (*Result, error)
}

type service struct {
	generator Generator
}

func NewService(generator Generator) Service {
	return &service{generator: generator}
}

// Preview runs the agent without persisting anything.
func (s *service) Preview(ctx context.Context, dto PreviewDTO) (*Result, error) {
	log := config.WithContext(ctx)

	total := min(dto.TotalQuestions, maxPreviewQuestions)
	log.Infof("Previewing %s quiz with %d questions", dto.Theme, total)

	return s.generator.Generate(ctx, Request{
		Theme:          Theme(dto.Theme),
		Difficulty:     Difficulty(dto.Difficulty),
		ContextSummary: dto.ContextSummary,
		TotalQuestions: total,
	})
}
