package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/auth"
	"github.com/mindcare/wellness-api/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Could not validate credentials")
		return uuid.Nil, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		config.Error(w, http.StatusUnprocessableEntity, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrQuizNotFound),
		errors.Is(err, ErrAttemptNotFound),
		errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrQuestionNotInQuiz),
		errors.Is(err, ErrNoQuestions):
		config.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrTooManyAnswers),
		errors.Is(err, ErrNoAnswers):
		config.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrAttemptClosed):
		config.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, aiquiz.ErrInvalidTheme),
		errors.Is(err, aiquiz.ErrInvalidDifficulty):
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		config.WithContext(r.Context()).WithError(err).Error(fallback)
		config.Error(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var dto GenerateQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.service.GenerateQuiz(r.Context(), userID, dto)
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate quiz")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) StartAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	res, err := h.service.StartAttempt(r.Context(), quizID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create quiz attempt")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ActiveAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.service.ActiveAttempt(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve quiz attempt")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) AttemptQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	attemptID, ok := pathID(w, r, "attemptID")
	if !ok {
		return
	}

	res, err := h.service.AttemptQuestions(r.Context(), attemptID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve quiz questions")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	attemptID, ok := pathID(w, r, "attemptID")
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	var dto SubmitAnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := config.Validate(dto); err != nil {
		config.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := h.service.SubmitAnswer(r.Context(), attemptID, userID, questionID, dto)
	if err != nil {
		writeServiceError(w, r, err, "Failed to submit answers for quiz attempt")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) AnswerForQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	attemptID, ok := pathID(w, r, "attemptID")
	if !ok {
		return
	}
	questionID, ok := pathID(w, r, "questionID")
	if !ok {
		return
	}

	res, err := h.service.AnswerForQuestion(r.Context(), attemptID, questionID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve question answers")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) AnswerByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	answerID, ok := pathID(w, r, "answerID")
	if !ok {
		return
	}

	res, err := h.service.AnswerByID(r.Context(), answerID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to retrieve answer")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	attemptID, ok := pathID(w, r, "attemptID")
	if !ok {
		return
	}

	res, err := h.service.Evaluate(r.Context(), attemptID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to evaluate quiz attempt")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) ListQuizzesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	quizzes, err := h.service.ListQuizzesByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list quizzes")
		return
	}
	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) GetQuizWithQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	res, err := h.service.GetQuizWithQuestions(r.Context(), quizID, userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load quiz")
		return
	}
	config.JSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}

	if err := h.service.DeleteQuiz(r.Context(), quizID, userID); err != nil {
		writeServiceError(w, r, err, "Failed to delete quiz")
		return
	}
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "Quiz deleted successfully",
	})
}
