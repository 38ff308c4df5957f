package aiquiz

import "github.com/samber/lo"

type Theme string

const (
	ThemeMentalHealth Theme = "mental_health"
	ThemeJudiOnline   Theme = "judi_online"
)

var AllThemes = []Theme{
	ThemeMentalHealth,
	ThemeJudiOnline,
}

func (t Theme) IsValid() bool {
	return lo.Contains(AllThemes, t)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var AllDifficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
}

func (d Difficulty) IsValid() bool {
	return lo.Contains(AllDifficulties, d)
}

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	MultipleAnswer QuestionType = "multiple_answer"
)

var AllQuestionTypes = []QuestionType{
	MultipleChoice,
	MultipleAnswer,
}

func (q QuestionType) IsValid() bool {
	return lo.Contains(AllQuestionTypes, q)
}

// CorrectRange is the inclusive number of correct labels a question of this
// type must carry.
func (q QuestionType) CorrectRange() (least, most int) {
	if q == MultipleAnswer {
		return 2, 3
	}
	return 1, 1
}

// Labels are the option labels every question carries, in display order.
var Labels = []string{"A", "B", "C", "D"}

type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

type Question struct {
	Text          string       `json:"question"`
	Options       Options      `json:"possible_answers"`
	Type          QuestionType `json:"question_type"`
	CorrectLabels []string     `json:"correct_answer"`
}

// QuizState is the record threaded through every step of one generation run.
type QuizState struct {
	Theme          Theme
	Difficulty     Difficulty
	ContextSummary *string
	TotalQuestions int

	// CurrentQuestionIndex is 0 until the first decide step.
	CurrentQuestionIndex int
	CurrentQuestionType  QuestionType

	Questions []Question

	Title       *string
	Description *string
}

func (s QuizState) questionTexts() []string {
	return lo.Map(s.Questions, func(q Question, _ int) string {
		return q.Text
	})
}

// snapshot returns a copy whose Questions slice does not alias the run's.
func (s QuizState) snapshot() QuizState {
	s.Questions = append([]Question(nil), s.Questions...)
	return s
}

type Result struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Questions   []Question `json:"questions"`
}

// EmptyResult is returned when a run produced no usable output at all.
func EmptyResult() *Result {
	return &Result{Questions: []Question{}}
}

type Request struct {
	Theme          Theme
	Difficulty     Difficulty
	ContextSummary *string
	TotalQuestions int
}

// QuestionRequest is what the question generator receives for one step.
// ContextSummary is only set on the mental-health track.
type QuestionRequest struct {
	Theme              Theme        `json:"theme"`
	Difficulty         Difficulty   `json:"difficulty"`
	QuestionType       QuestionType `json:"question_type"`
	PriorQuestionTexts []string     `json:"prior_question_texts"`
	ContextSummary     *string      `json:"context_summary,omitempty"`
}

// GeneratedQuestion is the raw collaborator payload, before validation.
type GeneratedQuestion struct {
	Question        string            `json:"question"`
	PossibleAnswers map[string]string `json:"possible_answers"`
	CorrectAnswer   []string          `json:"correct_answer"`
}

type FinalizeRequest struct {
	Theme         Theme      `json:"theme"`
	Difficulty    Difficulty `json:"difficulty"`
	QuestionTexts []string   `json:"question_texts"`
}

type TitleDescription struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
