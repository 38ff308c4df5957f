package mood

import (
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/config"
)

type MoodContainer struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewMoodContainer(db *gorm.DB, settings *config.Settings) *MoodContainer {
	repo := NewRepository(db)
	classifier := NewClassifier(settings.MoodClassifierURL, settings.MoodClassifierKey)
	service := NewService(repo, classifier, settings.Location, nil)
	handler := NewHandler(service)

	return &MoodContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
