package progress

import (
	"time"

	"github.com/google/uuid"
)

// UserCollection aggregates a user's quiz results. ConditionSummary is
// stored encrypted.
type UserCollection struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Score            float64   `gorm:"not null;default:0" json:"score"`
	PointEarned      int       `gorm:"not null;default:0" json:"point_earned"`
	NumQuizAttempt   int       `gorm:"not null;default:0" json:"num_quiz_attempt"`
	ConditionSummary *string   `gorm:"column:user_condition_summary;type:text" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserCollection) TableName() string {
	return "user_collections"
}

// Apply folds one completed attempt into the aggregate. Score stays the mean
// of all attempt percentages.
func (c *UserCollection) Apply(scorePct float64, points int) {
	n := float64(c.NumQuizAttempt)
	c.Score = (c.Score*n + scorePct) / (n + 1)
	c.PointEarned += points
	c.NumQuizAttempt++
}
