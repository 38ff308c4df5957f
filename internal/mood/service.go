package mood

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/config"
	util "github.com/mindcare/wellness-api/internal/utils"
)

var (
	ErrMoodAlreadyRecorded = errors.New("mood for today has already been recorded")
	ErrUnknownMood         = errors.New("mood level not found")
)

type Service interface {
	Detect(ctx context.Context, userID uuid.UUID, image string) (*Inference, error)
	DetectTrial(ctx context.Context, image string) (*Inference, error)
	TodayMood(ctx context.Context, userID uuid.UUID) (*string, error)
	MonthlyCounts(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

type service struct {
	repo       Repository
	classifier Classifier
	loc        *time.Location
	now        func() time.Time
}

// NewService builds the mood service. Days are counted in loc; a nil clock
// means time.Now.
func NewService(repo Repository, classifier Classifier, loc *time.Location, clock func() time.Time) Service {
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: repo, classifier: classifier, loc: loc, now: clock}
}

func (s *service) today() time.Time {
	return util.Today(s.loc, s.now())
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (s *service) Detect(ctx context.Context, userID uuid.UUID, image string) (*Inference, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)
	log.Info("Processing mood inference request")

	today := s.today()
	existing, err := s.repo.GetDaily(userID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Warn("Mood for today already recorded")
		return nil, ErrMoodAlreadyRecorded
	}

	inference, err := s.classifier.Classify(ctx, image)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.GetMoodByName(capitalize(inference.Prediction))
	if err != nil {
		return nil, err
	}
	if m == nil {
		log.Errorf("Classifier predicted unknown mood %q", inference.Prediction)
		return nil, ErrUnknownMood
	}

	err = s.repo.CreateDaily(&DailyMood{UserID: userID, Date: today, MoodID: m.ID})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrMoodAlreadyRecorded
	}
	if err != nil {
		log.WithError(err).Error("Failed to save daily mood")
		return nil, err
	}

	log.Infof("Recorded mood %s", m.Name)
	return inference, nil
}

func (s *service) DetectTrial(ctx context.Context, image string) (*Inference, error) {
	config.WithContext(ctx).Info("Processing mood inference trial")
	return s.classifier.Classify(ctx, image)
}

func (s *service) TodayMood(ctx context.Context, userID uuid.UUID) (*string, error) {
	name, err := s.repo.MoodNameOn(userID, s.today())
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load today's mood")
		return nil, err
	}
	return name, nil
}

// MonthlyCounts counts the user's moods since the first day of the current
// month.
func (s *service) MonthlyCounts(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	counts, err := s.repo.CountSince(userID, util.MonthStart(s.today()))
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to count monthly moods")
		return nil, err
	}
	return counts, nil
}
