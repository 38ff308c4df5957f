package quiz

import (
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/progress"
)

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(db *gorm.DB, generator aiquiz.Generator, progressSvc progress.Service, opts Options) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, generator, progressSvc, opts)
	handler := NewHandler(service)

	return &QuizContainer{
		Service: service,
		Handler: handler,
	}
}
