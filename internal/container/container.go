package container

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/chat"
	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/llm"
	"github.com/mindcare/wellness-api/internal/mood"
	"github.com/mindcare/wellness-api/internal/progress"
	"github.com/mindcare/wellness-api/internal/quiz"
	"github.com/mindcare/wellness-api/internal/ratelimit"
	"github.com/mindcare/wellness-api/internal/router"
	"github.com/mindcare/wellness-api/internal/user"
	util "github.com/mindcare/wellness-api/internal/utils"
)

type Container struct {
	Settings *config.Settings

	UserContainer   *user.UserContainer
	MoodContainer   *mood.MoodContainer
	ChatContainer   *chat.ChatContainer
	AIQuizContainer *aiquiz.AIQuizContainer
	QuizContainer   *quiz.QuizContainer

	TrialLimiter func(http.Handler) http.Handler
}

func migrate(db *gorm.DB) error {
	models := []interface{}{&user.User{}, &progress.UserCollection{}}
	models = append(models, mood.Models()...)
	models = append(models, quiz.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}
	return mood.NewRepository(db).Seed(mood.DefaultMoods)
}

func New() *Container {
	config.Init()
	log := config.Logger

	settings, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	auth.Init()
	config.InitCrypto()
	util.SetLocation(settings.Location)

	ctx := context.Background()
	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		log.WithError(err).Fatal("Failed to connect to DB")
	}
	if err := migrate(config.DB); err != nil {
		log.WithError(err).Fatal("Failed to migrate DB")
	}

	llmClient, err := llm.New(ctx, settings)
	if err != nil {
		log.WithError(err).Fatal("Failed to create LLM client")
	}

	progressService := progress.NewService(progress.NewRepository(config.DB))
	moodContainer := mood.NewMoodContainer(config.DB, settings)

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(llmClient)
	if err != nil {
		log.WithError(err).Fatal("Failed to load quiz prompts")
	}

	quizContainer := quiz.NewQuizContainer(config.DB, aiQuizContainer.Agent, progressService, quiz.Options{
		TotalQuestions: settings.QuizTotalQuestions,
		AttemptTTL:     settings.QuizAttemptTTL,
	})

	userContainer := user.NewUserContainer(
		config.DB,
		quizContainer.Service,
		moodContainer.Service,
		progressService,
		settings.JWTTTL,
	)

	chatContainer := chat.NewChatContainer(llmClient, userContainer.Service, moodContainer.Service)

	c := &Container{
		Settings:        settings,
		UserContainer:   userContainer,
		MoodContainer:   moodContainer,
		ChatContainer:   chatContainer,
		AIQuizContainer: aiQuizContainer,
		QuizContainer:   quizContainer,
	}

	if settings.RedisAddr != "" {
		client, err := ratelimit.NewClient(ctx, settings.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, trial endpoints are not rate limited")
		} else {
			limiter := ratelimit.NewRedisLimiter(client, settings.TrialRateLimit, time.Minute)
			c.TrialLimiter = ratelimit.Middleware(limiter)
		}
	}

	return c
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		MoodHandler:    c.MoodContainer.Handler,
		ChatHandler:    c.ChatContainer.Handler,
		AIQuizHandler:  c.AIQuizContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler,
		TrialLimiter:   c.TrialLimiter,
		AllowedOrigins: c.Settings.CORSAllowedOrigins,
	})
}
