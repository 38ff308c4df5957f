package user

import (
	"time"

	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/mood"
	"github.com/mindcare/wellness-api/internal/progress"
)

type UserContainer struct {
	Repo    UserRepository
	Service UserService
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, attempts Attempts, moods mood.Service, progressSvc progress.Service, tokenTTL time.Duration) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, attempts, moods, progressSvc, tokenTTL)
	handler := NewHandler(service, tokenTTL)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
