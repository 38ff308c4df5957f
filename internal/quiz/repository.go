package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizRepository interface {
	WithTx(tx *gorm.DB) QuizRepository

	Create(q *Quiz) error
	GetByID(id uuid.UUID) (*Quiz, error)
	Delete(id uuid.UUID) error
	ListQuizzesByUser(userID uuid.UUID) ([]*Quiz, error)

	AddQuestions(questions []*QuizQuestion) error
	ListQuestionsByQuiz(quizID uuid.UUID) ([]*QuizQuestion, error)
	GetQuestion(id uuid.UUID) (*QuizQuestion, error)

	CreateAttempt(a *QuizAttempt) error
	GetAttempt(id uuid.UUID) (*QuizAttempt, error)
	LatestActiveAttempt(userID uuid.UUID, now time.Time) (*QuizAttempt, error)
	ListExpiredOpenAttempts(userID uuid.UUID, now time.Time) ([]*QuizAttempt, error)
	CompleteAttempt(id uuid.UUID, score float64, points int) (bool, error)

	GetAnswer(id uuid.UUID) (*AttemptAnswer, error)
	GetAnswerFor(attemptID, questionID uuid.UUID) (*AttemptAnswer, error)
	ListAnswers(attemptID uuid.UUID) ([]*AttemptAnswer, error)
	CreateAnswer(a *AttemptAnswer) error
	UpdateAnswer(id uuid.UUID, labels []string) error
	MarkAnswer(id uuid.UUID, correct bool) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) WithTx(tx *gorm.DB) QuizRepository {
	if tx == nil {
		return r
	}
	return &quizRepository{db: tx}
}

func first[T any](db *gorm.DB, query string, args ...interface{}) (*T, error) {
	var v T
	if err := db.Where(query, args...).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetByID(id uuid.UUID) (*Quiz, error) {
	return first[Quiz](r.db, "id = ?", id)
}

// Delete removes the quiz together with its questions, attempts and answers.
func (r *quizRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		attempts := tx.Model(&QuizAttempt{}).Select("id").Where("quiz_id = ?", id)
		if err := tx.Where("attempt_id IN (?)", attempts).Delete(&AttemptAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&QuizAttempt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Quiz{}, "id = ?", id).Error
	})
}

func (r *quizRepository) ListQuizzesByUser(userID uuid.UUID) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("generated_by_user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) AddQuestions(questions []*QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *quizRepository) ListQuestionsByQuiz(quizID uuid.UUID) ([]*QuizQuestion, error) {
	var questions []*QuizQuestion
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) GetQuestion(id uuid.UUID) (*QuizQuestion, error) {
	return first[QuizQuestion](r.db, "id = ?", id)
}

func (r *quizRepository) CreateAttempt(a *QuizAttempt) error {
	return r.db.Create(a).Error
}

func (r *quizRepository) GetAttempt(id uuid.UUID) (*QuizAttempt, error) {
	return first[QuizAttempt](r.db, "id = ?", id)
}

func (r *quizRepository) LatestActiveAttempt(userID uuid.UUID, now time.Time) (*QuizAttempt, error) {
	var attempt QuizAttempt
	err := r.db.
		Where("user_id = ? AND expired_at > ? AND is_completed = ?", userID, now, false).
		Order("attempted_at DESC").
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *quizRepository) ListExpiredOpenAttempts(userID uuid.UUID, now time.Time) ([]*QuizAttempt, error) {
	var attempts []*QuizAttempt
	if err := r.db.
		Where("user_id = ? AND expired_at <= ? AND is_completed = ?", userID, now, false).
		Order("attempted_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// CompleteAttempt closes an open attempt. It reports false when the attempt
// was already completed.
func (r *quizRepository) CompleteAttempt(id uuid.UUID, score float64, points int) (bool, error) {
	res := r.db.Model(&QuizAttempt{}).
		Where("id = ? AND is_completed = ?", id, false).
		Updates(map[string]interface{}{
			"is_completed":  true,
			"score":         score,
			"points_earned": points,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *quizRepository) GetAnswer(id uuid.UUID) (*AttemptAnswer, error) {
	return first[AttemptAnswer](r.db, "id = ?", id)
}

func (r *quizRepository) GetAnswerFor(attemptID, questionID uuid.UUID) (*AttemptAnswer, error) {
	return first[AttemptAnswer](r.db, "attempt_id = ? AND question_id = ?", attemptID, questionID)
}

func (r *quizRepository) ListAnswers(attemptID uuid.UUID) ([]*AttemptAnswer, error) {
	var answers []*AttemptAnswer
	if err := r.db.Where("attempt_id = ?", attemptID).Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *quizRepository) CreateAnswer(a *AttemptAnswer) error {
	return r.db.Create(a).Error
}

func (r *quizRepository) UpdateAnswer(id uuid.UUID, labels []string) error {
	return r.db.Model(&AttemptAnswer{}).
		Where("id = ?", id).
		Update("user_answer", datatypes.JSONSlice[string](labels)).Error
}

func (r *quizRepository) MarkAnswer(id uuid.UUID, correct bool) error {
	return r.db.Model(&AttemptAnswer{}).
		Where("id = ?", id).
		Update("is_correct", correct).Error
}
