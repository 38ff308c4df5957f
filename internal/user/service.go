package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/mood"
	"github.com/mindcare/wellness-api/internal/progress"
	"github.com/mindcare/wellness-api/internal/quiz"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// ActiveAttemptError reports that the user still has an unfinished quiz
// attempt and should be sent back to it.
type ActiveAttemptError struct {
	AttemptID uuid.UUID
}

func (e *ActiveAttemptError) Error() string {
	return "You have an active quiz attempt that is not completed."
}

func (e *ActiveAttemptError) RedirectURL() string {
	return "/quiz/" + e.AttemptID.String()
}

// Attempts is the part of the quiz service the stats page needs.
type Attempts interface {
	CloseAbandoned(ctx context.Context, userID uuid.UUID) (int, error)
	ActiveAttempt(ctx context.Context, userID uuid.UUID) (*quiz.AttemptIDResponse, error)
}

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error)
	FetchStat(ctx context.Context, userID uuid.UUID) (*StatResponse, error)
	SetCondition(ctx context.Context, userID uuid.UUID, summary string) error
	FullName(ctx context.Context, userID uuid.UUID) (string, bool, error)
}

type userService struct {
	repo     UserRepository
	attempts Attempts
	moods    mood.Service
	progress progress.Service
	tokenTTL time.Duration
}

func NewService(repo UserRepository, attempts Attempts, moods mood.Service, progressSvc progress.Service, tokenTTL time.Duration) UserService {
	return &userService{
		repo:     repo,
		attempts: attempts,
		moods:    moods,
		progress: progressSvc,
		tokenTTL: tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx).WithField("username", dto.Username)
	log.Info("Registering user")

	exists, err := s.repo.ExistsByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		FullName:     dto.FullName,
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Age:          dto.Age,
	}
	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.Infof("User %s registered", u.ID)
	return toResponse(u), nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (string, error) {
	log := config.WithContext(ctx).WithField("username", dto.Username)

	u, err := s.repo.GetByUsername(dto.Username)
	if err != nil {
		return "", err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, dto.Password) {
		log.Warn("Login failed")
		return "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), auth.RoleUser, s.tokenTTL)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		return "", err
	}

	log.Info("User logged in")
	return token, nil
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *userService) FullName(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil || u == nil {
		return "", false, err
	}
	return u.FullName, true, nil
}

func (s *userService) SetCondition(ctx context.Context, userID uuid.UUID, summary string) error {
	return s.progress.SetConditionSummary(ctx, userID, summary)
}

// FetchStat closes the user's abandoned attempts while it gathers the
// profile statistics. A still running attempt is reported as
// *ActiveAttemptError.
func (s *userService) FetchStat(ctx context.Context, userID uuid.UUID) (*StatResponse, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	var cleanup errgroup.Group
	cleanup.Go(func() error {
		if _, err := s.attempts.CloseAbandoned(context.WithoutCancel(ctx), userID); err != nil {
			log.WithError(err).Error("Failed to close abandoned attempts")
		}
		return nil
	})
	defer cleanup.Wait()

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	active, err := s.attempts.ActiveAttempt(ctx, userID)
	switch {
	case err == nil:
		log.Warn("User has an active quiz attempt that is not completed")
		return nil, &ActiveAttemptError{AttemptID: active.QuizAttemptID}
	case !errors.Is(err, quiz.ErrAttemptNotFound):
		return nil, err
	}

	stat := &StatResponse{FullName: u.FullName, Age: u.Age}
	var counts map[string]int
	var collection *progress.UserCollection

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stat.TodayMood, err = s.moods.TodayMood(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.moods.MonthlyCounts(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		collection, err = s.progress.Get(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to gather user stats")
		return nil, err
	}

	stat.MonthlyMood = make(map[string]int, len(mood.DefaultMoods))
	for _, name := range mood.DefaultMoods {
		stat.MonthlyMood[name] = counts[name]
	}
	stat.Score = collection.Score
	stat.PointEarned = collection.PointEarned
	return stat, nil
}
