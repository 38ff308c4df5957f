package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/config"
	"github.com/mindcare/wellness-api/internal/progress"
	util "github.com/mindcare/wellness-api/internal/utils"
)

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrEmptyQuiz         = errors.New("quiz generation returned no questions")
	ErrNoQuestions       = errors.New("no questions found for the quiz")
	ErrAttemptNotFound   = errors.New("quiz attempt not found or has expired")
	ErrAttemptClosed     = errors.New("quiz attempt is already completed")
	ErrQuestionNotInQuiz = errors.New("question not found for the quiz attempt")
	ErrTooManyAnswers    = errors.New("invalid number of answers for the question")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrNoAnswers         = errors.New("no answers found for the quiz attempt")
)

type QuizService interface {
	GenerateQuiz(ctx context.Context, userID uuid.UUID, dto GenerateQuizDTO) (*GenerateQuizResponse, error)
	GetQuizWithQuestions(ctx context.Context, quizID, userID uuid.UUID) (*QuizWithQuestionsDTO, error)
	ListQuizzesByUser(ctx context.Context, userID uuid.UUID) ([]*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID, userID uuid.UUID) error

	StartAttempt(ctx context.Context, quizID, userID uuid.UUID) (*AttemptResponse, error)
	ActiveAttempt(ctx context.Context, userID uuid.UUID) (*AttemptIDResponse, error)
	AttemptQuestions(ctx context.Context, attemptID, userID uuid.UUID) (*AttemptQuestionsResponse, error)

	SubmitAnswer(ctx context.Context, attemptID, userID, questionID uuid.UUID, dto SubmitAnswerDTO) (*SubmitAnswerResponse, error)
	AnswerForQuestion(ctx context.Context, attemptID, questionID, userID uuid.UUID) (*UserAnswerResponse, error)
	AnswerByID(ctx context.Context, answerID, userID uuid.UUID) (*UserAnswerResponse, error)

	Evaluate(ctx context.Context, attemptID, userID uuid.UUID) (*EvaluationResponse, error)
	CloseAbandoned(ctx context.Context, userID uuid.UUID) (int, error)
}

// Options tunes a QuizService. Zero values fall back to the defaults.
type Options struct {
	TotalQuestions int
	AttemptTTL     time.Duration
	Clock          func() time.Time
}

type quizService struct {
	db        *gorm.DB
	repo      QuizRepository
	generator aiquiz.Generator
	progress  progress.Service

	totalQuestions int
	attemptTTL     time.Duration
	now            func() time.Time
}

func NewService(db *gorm.DB, repo QuizRepository, generator aiquiz.Generator, progressSvc progress.Service, opts Options) QuizService {
	s := &quizService{
		db:             db,
		repo:           repo,
		generator:      generator,
		progress:       progressSvc,
		totalQuestions: opts.TotalQuestions,
		attemptTTL:     opts.AttemptTTL,
		now:            opts.Clock,
	}
	if s.totalQuestions <= 0 {
		s.totalQuestions = 2
	}
	if s.attemptTTL <= 0 {
		s.attemptTTL = 30 * time.Minute
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID uuid.UUID, dto GenerateQuizDTO) (*GenerateQuizResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"user_id":    userID,
		"theme":      dto.Theme,
		"difficulty": dto.Difficulty,
	})
	log.Info("Generating quiz")

	req := aiquiz.Request{
		Theme:          aiquiz.Theme(dto.Theme),
		Difficulty:     aiquiz.Difficulty(dto.Difficulty),
		TotalQuestions: s.totalQuestions,
	}
	if req.Theme == aiquiz.ThemeMentalHealth {
		summary, err := s.progress.ConditionSummary(ctx, userID)
		if err != nil {
			log.WithError(err).Error("Failed to load condition summary")
			return nil, err
		}
		req.ContextSummary = summary
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.WithError(err).Error("Quiz generation failed")
		return nil, err
	}
	if result == nil || len(result.Questions) == 0 {
		log.Error("Quiz generation returned no questions")
		return nil, ErrEmptyQuiz
	}

	quiz := &Quiz{
		GeneratedByUserID: userID,
		Title:             result.Title,
		Description:       result.Description,
		Theme:             req.Theme,
		Difficulty:        req.Difficulty,
	}
	questions := lo.Map(result.Questions, func(q aiquiz.Question, i int) *QuizQuestion {
		return &QuizQuestion{
			QuestionText:    q.Text,
			PossibleAnswers: datatypes.NewJSONType(q.Options),
			QuestionType:    q.Type,
			CorrectAnswer:   datatypes.JSONSlice[string](q.CorrectLabels),
			OrderIndex:      i,
		}
	})

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(quiz); err != nil {
			return err
		}
		for _, q := range questions {
			q.QuizID = quiz.ID
		}
		return repo.AddQuestions(questions)
	})
	if err != nil {
		log.WithError(err).Error("Failed to save generated quiz")
		return nil, err
	}

	log.Infof("Quiz %s saved with %d questions", quiz.ID, len(questions))
	return &GenerateQuizResponse{
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
	}, nil
}

func (s *quizService) ownedQuiz(quizID, userID uuid.UUID) (*Quiz, error) {
	q, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if q == nil || q.GeneratedByUserID != userID {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, quizID, userID uuid.UUID) (*QuizWithQuestionsDTO, error) {
	q, err := s.ownedQuiz(quizID, userID)
	if err != nil {
		return nil, err
	}
	questions, err := s.repo.ListQuestionsByQuiz(quizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load quiz questions")
		return nil, err
	}
	return &QuizWithQuestionsDTO{Quiz: q, Questions: questions}, nil
}

func (s *quizService) ListQuizzesByUser(ctx context.Context, userID uuid.UUID) ([]*Quiz, error) {
	quizzes, err := s.repo.ListQuizzesByUser(userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quizzes")
		return nil, err
	}
	return quizzes, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	if _, err := s.ownedQuiz(quizID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	log.Infof("Quiz %s deleted", quizID)
	return nil
}

func toAttemptQuestions(questions []*QuizQuestion) []AttemptQuestion {
	return lo.Map(questions, func(q *QuizQuestion, _ int) AttemptQuestion {
		return AttemptQuestion{
			QuestionID:      q.ID,
			QuestionText:    q.QuestionText,
			PossibleAnswers: q.PossibleAnswers.Data(),
			QuestionType:    q.QuestionType,
		}
	})
}

func (s *quizService) StartAttempt(ctx context.Context, quizID, userID uuid.UUID) (*AttemptResponse, error) {
	log := config.WithContext(ctx)
	log.Infof("Starting attempt of quiz %s for user %s", quizID, userID)

	questions, err := s.repo.ListQuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		log.Warnf("Quiz %s has no questions", quizID)
		return nil, ErrNoQuestions
	}

	now := s.now()
	attempt := &QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		AttemptedAt: now,
		ExpiredAt:   now.Add(s.attemptTTL),
	}
	if err := s.repo.CreateAttempt(attempt); err != nil {
		log.WithError(err).Error("Failed to create quiz attempt")
		return nil, err
	}

	return &AttemptResponse{
		QuizAttemptID: attempt.ID,
		QuizID:        quizID,
		Questions:     toAttemptQuestions(questions),
		ExpiredAt:     util.NewLocalDateTime(attempt.ExpiredAt),
	}, nil
}

func (s *quizService) ActiveAttempt(ctx context.Context, userID uuid.UUID) (*AttemptIDResponse, error) {
	attempt, err := s.repo.LatestActiveAttempt(userID, s.now())
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to look up active attempt")
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	return &AttemptIDResponse{QuizAttemptID: attempt.ID}, nil
}

// ownedAttempt loads an attempt belonging to userID. Attempts of other users
// are reported as missing.
func (s *quizService) ownedAttempt(attemptID, userID uuid.UUID) (*QuizAttempt, error) {
	attempt, err := s.repo.GetAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

func (s *quizService) AttemptQuestions(ctx context.Context, attemptID, userID uuid.UUID) (*AttemptQuestionsResponse, error) {
	attempt, err := s.ownedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.ExpiredAt.After(s.now()) {
		return nil, ErrAttemptNotFound
	}

	questions, err := s.repo.ListQuestionsByQuiz(attempt.QuizID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load attempt questions")
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	return &AttemptQuestionsResponse{
		Questions: toAttemptQuestions(questions),
		ExpiredAt: util.NewLocalDateTime(attempt.ExpiredAt),
	}, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, attemptID, userID, questionID uuid.UUID, dto SubmitAnswerDTO) (*SubmitAnswerResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"attempt_id":  attemptID,
		"question_id": questionID,
	})

	attempt, err := s.ownedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if !attempt.Active(s.now()) {
		return nil, ErrAttemptNotFound
	}

	question, err := s.repo.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil || question.QuizID != attempt.QuizID {
		return nil, ErrQuestionNotInQuiz
	}
	if question.QuestionType == aiquiz.MultipleChoice && len(dto.UserAnswers) > 1 {
		return nil, ErrTooManyAnswers
	}

	existing, err := s.repo.GetAnswerFor(attemptID, questionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := s.repo.UpdateAnswer(existing.ID, dto.UserAnswers); err != nil {
			log.WithError(err).Error("Failed to update answer")
			return nil, err
		}
		log.Info("Answer updated")
		return &SubmitAnswerResponse{Message: "Answers submitted successfully", AttemptAnswerID: existing.ID}, nil
	}

	answer := &AttemptAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		UserAnswer: datatypes.JSONSlice[string](dto.UserAnswers),
	}
	if err := s.repo.CreateAnswer(answer); err != nil {
		log.WithError(err).Error("Failed to save answer")
		return nil, err
	}

	log.Info("Answer recorded")
	return &SubmitAnswerResponse{Message: "Answers submitted successfully", AttemptAnswerID: answer.ID}, nil
}

func (s *quizService) AnswerForQuestion(ctx context.Context, attemptID, questionID, userID uuid.UUID) (*UserAnswerResponse, error) {
	if _, err := s.ownedAttempt(attemptID, userID); err != nil {
		return nil, err
	}
	answer, err := s.repo.GetAnswerFor(attemptID, questionID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, ErrAnswerNotFound
	}
	return &UserAnswerResponse{AttemptAnswerID: answer.ID, UserAnswer: answer.UserAnswer}, nil
}

func (s *quizService) AnswerByID(ctx context.Context, answerID, userID uuid.UUID) (*UserAnswerResponse, error) {
	answer, err := s.repo.GetAnswer(answerID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, ErrAnswerNotFound
	}
	if _, err := s.ownedAttempt(answer.AttemptID, userID); err != nil {
		if errors.Is(err, ErrAttemptNotFound) {
			return nil, ErrAnswerNotFound
		}
		return nil, err
	}
	return &UserAnswerResponse{AttemptAnswerID: answer.ID, UserAnswer: answer.UserAnswer}, nil
}

func (s *quizService) Evaluate(ctx context.Context, attemptID, userID uuid.UUID) (*EvaluationResponse, error) {
	log := config.WithContext(ctx).WithField("attempt_id", attemptID)
	log.Info("Evaluating quiz attempt")

	attempt, err := s.ownedAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, ErrAttemptClosed
	}

	answers, err := s.repo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, ErrNoAnswers
	}

	card, err := s.complete(ctx, attempt, answers)
	if err != nil {
		log.WithError(err).Error("Failed to evaluate quiz attempt")
		return nil, err
	}

	log.Infof("Quiz attempt evaluated with score %.2f", card.Score)
	return &EvaluationResponse{
		QuizAttemptID:     attempt.ID,
		Score:             card.Score,
		PointsEarned:      card.Points,
		EvaluationDetails: card.Details,
	}, nil
}

// CloseAbandoned scores and completes every expired attempt the user left
// open. It returns how many attempts were closed.
func (s *quizService) CloseAbandoned(ctx context.Context, userID uuid.UUID) (int, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	attempts, err := s.repo.ListExpiredOpenAttempts(userID, s.now())
	if err != nil {
		log.WithError(err).Error("Failed to list abandoned attempts")
		return 0, err
	}

	closed := 0
	for _, attempt := range attempts {
		answers, err := s.repo.ListAnswers(attempt.ID)
		if err != nil {
			return closed, err
		}
		if _, err := s.complete(ctx, attempt, answers); err != nil {
			if errors.Is(err, ErrAttemptClosed) {
				continue
			}
			log.WithError(err).Errorf("Failed to close abandoned attempt %s", attempt.ID)
			return closed, err
		}
		closed++
	}

	if closed > 0 {
		log.Infof("Closed %d abandoned attempts", closed)
	}
	return closed, nil
}

// complete grades the attempt and, in one transaction, marks the answers,
// closes the attempt and records the result in the user's progress.
func (s *quizService) complete(ctx context.Context, attempt *QuizAttempt, answers []*AttemptAnswer) (*scoreCard, error) {
	questions, err := s.repo.ListQuestionsByQuiz(attempt.QuizID)
	if err != nil {
		return nil, err
	}
	card := grade(questions, answers)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for id, correct := range card.Marks {
			if err := repo.MarkAnswer(id, correct); err != nil {
				return err
			}
		}
		ok, err := repo.CompleteAttempt(attempt.ID, card.Score, card.Points)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAttemptClosed
		}
		if err := s.progress.RecordAttempt(ctx, tx, attempt.UserID, card.Score, card.Points); err != nil {
			return fmt.Errorf("record progress: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}
