package mood_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/mood"
	"github.com/mindcare/wellness-api/internal/testutil"
)

type stubClassifier struct {
	calls      int
	prediction string
	err        error
}

func (c *stubClassifier) Classify(context.Context, string) (*mood.Inference, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &mood.Inference{Prediction: c.prediction}, nil
}

var wib = time.FixedZone("WIB", 7*60*60)

func newService(t *testing.T, classifier mood.Classifier, now *time.Time) mood.Service {
	t.Helper()
	db := testutil.NewDB(t, mood.Models()...)
	repo := mood.NewRepository(db)
	if err := repo.Seed(mood.DefaultMoods); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := repo.Seed(mood.DefaultMoods); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	return mood.NewService(repo, classifier, wib, func() time.Time { return *now })
}

func TestDetectOncePerDay(t *testing.T) {
	now := time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC) // 1 April in WIB
	classifier := &stubClassifier{prediction: "sad"}
	svc := newService(t, classifier, &now)
	ctx := context.Background()
	userID := uuid.New()

	res, err := svc.Detect(ctx, userID, "img")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if res.Prediction != "sad" {
		t.Errorf("unexpected prediction %q", res.Prediction)
	}

	today, err := svc.TodayMood(ctx, userID)
	if err != nil || today == nil || *today != "Sad" {
		t.Fatalf("expected today's mood Sad, got %v, %v", today, err)
	}

	if _, err := svc.Detect(ctx, userID, "img"); !errors.Is(err, mood.ErrMoodAlreadyRecorded) {
		t.Errorf("expected ErrMoodAlreadyRecorded, got %v", err)
	}
	if classifier.calls != 1 {
		t.Errorf("expected classifier to be skipped on second detection, got %d calls", classifier.calls)
	}

	now = now.Add(24 * time.Hour)
	classifier.prediction = "HAPPY"
	if _, err := svc.Detect(ctx, userID, "img"); err != nil {
		t.Fatalf("Detect on the next day failed: %v", err)
	}

	counts, err := svc.MonthlyCounts(ctx, userID)
	if err != nil {
		t.Fatalf("MonthlyCounts failed: %v", err)
	}
	if len(counts) != 2 || counts["Sad"] != 1 || counts["Happy"] != 1 {
		t.Errorf("unexpected monthly counts %v", counts)
	}
}

func TestMonthlyCountsStartAtMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 30, 5, 0, 0, 0, time.UTC)
	classifier := &stubClassifier{prediction: "angry"}
	svc := newService(t, classifier, &now)
	ctx := context.Background()
	userID := uuid.New()

	if _, err := svc.Detect(ctx, userID, "img"); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	now = time.Date(2025, 4, 2, 5, 0, 0, 0, time.UTC)
	counts, err := svc.MonthlyCounts(ctx, userID)
	if err != nil {
		t.Fatalf("MonthlyCounts failed: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected last month's moods to be excluded, got %v", counts)
	}
	today, err := svc.TodayMood(ctx, userID)
	if err != nil || today != nil {
		t.Errorf("expected no mood today, got %v, %v", today, err)
	}
}

func TestDetectFailures(t *testing.T) {
	now := time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("UnknownMood", func(t *testing.T) {
		svc := newService(t, &stubClassifier{prediction: "bored"}, &now)
		if _, err := svc.Detect(ctx, uuid.New(), "img"); !errors.Is(err, mood.ErrUnknownMood) {
			t.Errorf("expected ErrUnknownMood, got %v", err)
		}
	})

	t.Run("ClassifierError", func(t *testing.T) {
		svc := newService(t, &stubClassifier{err: mood.ErrInvalidInference}, &now)
		userID := uuid.New()
		if _, err := svc.Detect(ctx, userID, "img"); !errors.Is(err, mood.ErrInvalidInference) {
			t.Errorf("expected ErrInvalidInference, got %v", err)
		}
		today, err := svc.TodayMood(ctx, userID)
		if err != nil || today != nil {
			t.Errorf("expected nothing recorded, got %v, %v", today, err)
		}
	})

	t.Run("TrialDoesNotRecord", func(t *testing.T) {
		classifier := &stubClassifier{prediction: "fear"}
		svc := newService(t, classifier, &now)
		res, err := svc.DetectTrial(ctx, "img")
		if err != nil || res.Prediction != "fear" {
			t.Fatalf("DetectTrial returned %+v, %v", res, err)
		}
	})
}
