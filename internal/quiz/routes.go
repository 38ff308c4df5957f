package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindcare/wellness-api/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/generate", h.GenerateQuiz)

	r.Get("/attempt", h.ActiveAttempt)
	r.Post("/attempt/{quizID}", h.StartAttempt)
	r.Get("/attempt/{attemptID}", h.AttemptQuestions)
	r.Put("/attempt/{attemptID}/answer/{questionID}", h.SubmitAnswer)

	r.Get("/answer/{answerID}", h.AnswerByID)
	r.Get("/answer/{attemptID}/{questionID}", h.AnswerForQuestion)

	r.Post("/submit/{attemptID}", h.Evaluate)

	r.Get("/", h.ListQuizzesByUser)
	r.Get("/{quizID}", h.GetQuizWithQuestions)
	r.Delete("/{quizID}", h.DeleteQuiz)
	return r
}
