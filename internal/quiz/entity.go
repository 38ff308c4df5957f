package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/aiquiz"
)

type Quiz struct {
	ID                uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	GeneratedByUserID uuid.UUID         `gorm:"type:uuid;not null;index" json:"generated_by_user_id"`
	Title             *string           `gorm:"type:text" json:"title"`
	Description       *string           `gorm:"type:text" json:"description"`
	Theme             aiquiz.Theme      `gorm:"type:varchar(32);not null" json:"theme"`
	Difficulty        aiquiz.Difficulty `gorm:"type:varchar(16);not null" json:"difficulty"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type QuizQuestion struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID          uuid.UUID                          `gorm:"type:uuid;not null;index" json:"quiz_id"`
	QuestionText    string                             `gorm:"type:text;not null" json:"question_text"`
	PossibleAnswers datatypes.JSONType[aiquiz.Options] `gorm:"not null" json:"possible_answers"`
	QuestionType    aiquiz.QuestionType                `gorm:"type:varchar(32);not null" json:"question_type"`
	CorrectAnswer   datatypes.JSONSlice[string]        `gorm:"not null" json:"correct_answer"`
	OrderIndex      int                                `gorm:"not null" json:"order_index"`
	CreatedAt       time.Time                          `gorm:"autoCreateTime" json:"created_at"`
}

func (q *QuizQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

type QuizAttempt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AttemptedAt  time.Time `gorm:"not null" json:"attempted_at"`
	ExpiredAt    time.Time `gorm:"not null;index" json:"expired_at"`
	IsCompleted  bool      `gorm:"not null;default:false" json:"is_completed"`
	Score        float64   `gorm:"not null;default:0" json:"score"`
	PointsEarned int       `gorm:"not null;default:0" json:"points_earned"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Active reports whether answers may still be submitted at now.
func (a *QuizAttempt) Active(now time.Time) bool {
	return !a.IsCompleted && a.ExpiredAt.After(now)
}

type AttemptAnswer struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AttemptID  uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	UserAnswer datatypes.JSONSlice[string] `gorm:"not null" json:"user_answer"`
	IsCorrect  *bool                       `json:"is_correct"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (a *AttemptAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Models lists every table this package owns, in migration order.
func Models() []interface{} {
	return []interface{}{&Quiz{}, &QuizQuestion{}, &QuizAttempt{}, &AttemptAnswer{}}
}
