package progress

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mindcare/wellness-api/internal/config"
	"gorm.io/gorm"
)

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserCollection, error)
	RecordAttempt(ctx context.Context, tx *gorm.DB, userID uuid.UUID, scorePct float64, points int) error
	ConditionSummary(ctx context.Context, userID uuid.UUID) (*string, error)
	SetConditionSummary(ctx context.Context, userID uuid.UUID, summary string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Get returns the user's aggregate, or a zero one if the user has none yet.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserCollection, error) {
	c, err := s.repo.GetByUserID(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load user collection")
		return nil, err
	}
	if c == nil {
		return &UserCollection{UserID: userID}, nil
	}
	return c, nil
}

// RecordAttempt runs inside tx when one is given so the aggregate commits
// together with the attempt.
func (s *service) RecordAttempt(ctx context.Context, tx *gorm.DB, userID uuid.UUID, scorePct float64, points int) error {
	log := config.WithContext(ctx)
	repo := s.repo.WithTx(tx)

	c, err := repo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if c == nil {
		c = &UserCollection{UserID: userID}
	}
	c.Apply(scorePct, points)

	if err := repo.Save(c); err != nil {
		log.WithError(err).Error("Failed to save user collection")
		return err
	}

	log.Infof("Recorded attempt for user %s: score %.2f, %d attempts", userID, c.Score, c.NumQuizAttempt)
	return nil
}

func (s *service) ConditionSummary(ctx context.Context, userID uuid.UUID) (*string, error) {
	c, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ConditionSummary == nil || *c.ConditionSummary == "" {
		return nil, nil
	}

	plain, err := config.Decrypt(*c.ConditionSummary)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to decrypt condition summary")
		return nil, fmt.Errorf("decrypt condition summary: %w", err)
	}
	return &plain, nil
}

func (s *service) SetConditionSummary(ctx context.Context, userID uuid.UUID, summary string) error {
	c, err := s.repo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if c == nil {
		c = &UserCollection{UserID: userID}
	}

	encrypted, err := config.Encrypt(summary)
	if err != nil {
		return fmt.Errorf("encrypt condition summary: %w", err)
	}
	c.ConditionSummary = &encrypted

	if err := s.repo.Save(c); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to save condition summary")
		return err
	}
	return nil
}
