package progress_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/progress"
	"github.com/mindcare/wellness-api/internal/testutil"
)

func TestApplyKeepsRunningMean(t *testing.T) {
	c := &progress.UserCollection{}
	for _, pct := range []float64{100, 50, 0} {
		c.Apply(pct, int(pct/50))
	}
	if math.Abs(c.Score-50) > 1e-9 {
		t.Errorf("expected mean score 50, got %v", c.Score)
	}
	if c.PointEarned != 3 || c.NumQuizAttempt != 3 {
		t.Errorf("unexpected totals %+v", c)
	}
}

func TestRecordAttempt(t *testing.T) {
	db := testutil.NewDB(t, &progress.UserCollection{})
	svc := progress.NewService(progress.NewRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	if err := svc.RecordAttempt(ctx, nil, userID, 80, 4); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if err := svc.RecordAttempt(ctx, db, userID, 40, 2); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}

	c, err := svc.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Score != 60 || c.PointEarned != 6 || c.NumQuizAttempt != 2 {
		t.Errorf("unexpected collection %+v", c)
	}

	empty, err := svc.Get(ctx, uuid.New())
	if err != nil || empty.NumQuizAttempt != 0 {
		t.Errorf("expected zero collection for unknown user, got %+v, %v", empty, err)
	}
}

func TestConditionSummaryIsEncrypted(t *testing.T) {
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	config.InitCrypto()

	db := testutil.NewDB(t, &progress.UserCollection{})
	svc := progress.NewService(progress.NewRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	got, err := svc.ConditionSummary(ctx, userID)
	if err != nil || got != nil {
		t.Fatalf("expected no summary, got %v, %v", got, err)
	}

	const summary = "often anxious before exams"
	if err := svc.SetConditionSummary(ctx, userID, summary); err != nil {
		t.Fatalf("SetConditionSummary failed: %v", err)
	}

	var stored progress.UserCollection
	if err := db.First(&stored, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.ConditionSummary == nil || *stored.ConditionSummary == summary {
		t.Errorf("summary stored in plain text")
	}

	got, err = svc.ConditionSummary(ctx, userID)
	if err != nil {
		t.Fatalf("ConditionSummary failed: %v", err)
	}
	if got == nil || *got != summary {
		t.Errorf("expected %q, got %v", summary, got)
	}
}
