package quiz

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// pointsPerCorrect is awarded for every correctly answered question.
const pointsPerCorrect = 1

type scoreCard struct {
	Details []EvaluationDetail
	Marks   map[uuid.UUID]bool
	Correct int
	Score   float64
	Points  int
}

// sameLabels compares two label sets ignoring order and duplicates.
func sameLabels(a, b []string) bool {
	ua, ub := lo.Uniq(a), lo.Uniq(b)
	return len(ua) == len(ub) && lo.Every(ua, ub)
}

// grade scores answers against questions. Unanswered questions count as
// incorrect and the score is the share of correct questions, in percent.
func grade(questions []*QuizQuestion, answers []*AttemptAnswer) scoreCard {
	byQuestion := lo.KeyBy(answers, func(a *AttemptAnswer) uuid.UUID { return a.QuestionID })

	card := scoreCard{
		Details: make([]EvaluationDetail, 0, len(questions)),
		Marks:   make(map[uuid.UUID]bool, len(answers)),
	}
	for _, q := range questions {
		detail := EvaluationDetail{
			QuestionID:      q.ID,
			QuestionText:    q.QuestionText,
			PossibleAnswers: q.PossibleAnswers.Data(),
			UserAnswer:      []string{},
			CorrectAnswer:   []string(q.CorrectAnswer),
		}
		if a, ok := byQuestion[q.ID]; ok {
			detail.UserAnswer = []string(a.UserAnswer)
			detail.IsCorrect = sameLabels(a.UserAnswer, q.CorrectAnswer)
			card.Marks[a.ID] = detail.IsCorrect
		}
		if detail.IsCorrect {
			card.Correct++
		}
		card.Details = append(card.Details, detail)
	}

	if len(questions) > 0 {
		card.Score = float64(card.Correct) / float64(len(questions)) * 100
	}
	card.Points = card.Correct * pointsPerCorrect
	return card
}
