package quiz

import (
	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	util "github.com/mindcare/wellness-api/internal/utils"
)

type GenerateQuizDTO struct {
	Theme      string `json:"theme" validate:"required,oneof=mental_health judi_online"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

type GenerateQuizResponse struct {
	QuizID      uuid.UUID `json:"quiz_id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
}

// AttemptQuestion is a question as shown to the user, without its answer.
type AttemptQuestion struct {
	QuestionID      uuid.UUID           `json:"question_id"`
	QuestionText    string              `json:"question_text"`
	PossibleAnswers aiquiz.Options      `json:"possible_answers"`
	QuestionType    aiquiz.QuestionType `json:"question_type"`
}

type AttemptResponse struct {
	QuizAttemptID uuid.UUID          `json:"quiz_attempt_id"`
	QuizID        uuid.UUID          `json:"quiz_id"`
	Questions     []AttemptQuestion  `json:"questions"`
	ExpiredAt     util.LocalDateTime `json:"expired_at"`
}

type AttemptQuestionsResponse struct {
	Questions []AttemptQuestion  `json:"questions"`
	ExpiredAt util.LocalDateTime `json:"expired_at"`
}

type AttemptIDResponse struct {
	QuizAttemptID uuid.UUID `json:"quiz_attempt_id"`
}

type SubmitAnswerDTO struct {
	UserAnswers []string `json:"user_answers" validate:"required,min=1,max=4,unique,dive,oneof=A B C D"`
}

type SubmitAnswerResponse struct {
	Message         string    `json:"message"`
	AttemptAnswerID uuid.UUID `json:"attempt_answer_id"`
}

type UserAnswerResponse struct {
	AttemptAnswerID uuid.UUID `json:"attempt_answer_id"`
	UserAnswer      []string  `json:"user_answer"`
}

type EvaluationDetail struct {
	QuestionID      uuid.UUID      `json:"question_id"`
	QuestionText    string         `json:"question_text"`
	PossibleAnswers aiquiz.Options `json:"possible_answers"`
	UserAnswer      []string       `json:"user_answer"`
	CorrectAnswer   []string       `json:"correct_answer"`
	IsCorrect       bool           `json:"is_correct"`
}

type EvaluationResponse struct {
	QuizAttemptID     uuid.UUID          `json:"quiz_attempt_id"`
	Score             float64            `json:"score"`
	PointsEarned      int                `json:"points_earned"`
	EvaluationDetails []EvaluationDetail `json:"evaluation_details"`
}

type QuizWithQuestionsDTO struct {
	Quiz      *Quiz           `json:"quiz"`
	Questions []*QuizQuestion `json:"questions"`
}
