package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/mindcare/wellness-api/internal/config"
)

var (
	ErrInvalidTheme         = errors.New("invalid quiz theme")
	ErrInvalidDifficulty    = errors.New("invalid quiz difficulty")
	ErrGenerationFailed     = errors.New("quiz generation failed")
	ErrStructuralValidation = errors.New("generated question failed structural validation")

	// errNoOutput marks a collaborator that answered with nothing at all.
	errNoOutput = errors.New("collaborator returned no output")
)

// GenerationError reports the step a run aborted in. It matches both
// ErrGenerationFailed and the underlying cause.
type GenerationError struct {
	Step  Step
	Index int
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("quiz generation failed at %s (question %d): %v", e.Step, e.Index, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailed, e.Err}
}

// QuestionGenerator produces one question. Returning (nil, nil) means the
// collaborator had nothing to say.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, req QuestionRequest) (*GeneratedQuestion, error)
}

// Finalizer produces the quiz title and description. Returning (nil, nil)
// leaves both unset.
type Finalizer interface {
	Finalize(ctx context.Context, req FinalizeRequest) (*TitleDescription, error)
}

// StepHook observes the state after each step. It receives a copy.
type StepHook func(step Step, state QuizState)

type Option func(*Agent)

func WithSampler(s TypeSampler) Option {
	return func(a *Agent) {
		if s != nil {
			a.sample = s
		}
	}
}

func WithStepHook(h StepHook) Option {
	return func(a *Agent) {
		a.hook = h
	}
}

// track is the per-theme branch of the machine.
type track struct {
	theme       Theme
	usesContext bool
}

var tracks = map[Theme]track{
	ThemeMentalHealth: {theme: ThemeMentalHealth, usesContext: true},
	ThemeJudiOnline:   {theme: ThemeJudiOnline, usesContext: false},
}

type Agent struct {
	questions QuestionGenerator
	finalizer Finalizer
	sample    TypeSampler
	hook      StepHook
}

func NewAgent(questions QuestionGenerator, finalizer Finalizer, opts ...Option) *Agent {
	a := &Agent{
		questions: questions,
		finalizer: finalizer,
		sample:    DefaultSampler,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate runs one quiz generation to completion. Runs are independent;
// each owns its state.
func (a *Agent) Generate(ctx context.Context, req Request) (*Result, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"theme":      req.Theme,
		"difficulty": req.Difficulty,
		"total":      req.TotalQuestions,
	})

	if !req.Theme.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTheme, req.Theme)
	}
	if !req.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, req.Difficulty)
	}

	state := QuizState{
		Theme:          req.Theme,
		Difficulty:     req.Difficulty,
		ContextSummary: req.ContextSummary,
		TotalQuestions: req.TotalQuestions,
		Questions:      []Question{},
	}

	var tr track
	step := StepStart
	for step != StepDone {
		if err := ctx.Err(); err != nil {
			return nil, &GenerationError{Step: step, Index: state.CurrentQuestionIndex, Err: err}
		}

		var (
			ev  Event
			err error
		)
		switch step {
		case StepStart:
			tr, ev = a.dispatch(state)
		case StepDecide:
			state, ev = a.decide(state)
		case StepGenerate:
			state, ev, err = a.generate(ctx, tr, state)
		case StepFinalize:
			state, ev, err = a.finalize(ctx, state)
		}
		if errors.Is(err, errNoOutput) {
			log.Warnf("No output from question generator at question %d, returning empty quiz", state.CurrentQuestionIndex)
			return EmptyResult(), nil
		}
		if err != nil {
			log.WithError(err).Errorf("Quiz generation aborted at %s", step)
			return nil, &GenerationError{Step: step, Index: state.CurrentQuestionIndex, Err: err}
		}

		if a.hook != nil {
			a.hook(step, state.snapshot())
		}

		next, err := transition(step, ev)
		if err != nil {
			return nil, &GenerationError{Step: step, Index: state.CurrentQuestionIndex, Err: err}
		}
		step = next
	}

	log.Infof("Generated quiz with %d questions", len(state.Questions))
	return &Result{
		Title:       state.Title,
		Description: state.Description,
		Questions:   state.Questions,
	}, nil
}

func (a *Agent) dispatch(s QuizState) (track, Event) {
	return tracks[s.Theme], EventDispatched
}

func (a *Agent) decide(s QuizState) (QuizState, Event) {
	s.CurrentQuestionIndex++
	if s.CurrentQuestionIndex > s.TotalQuestions {
		return s, EventStop
	}
	s.CurrentQuestionType = a.sample()
	return s, EventContinue
}

func (a *Agent) generate(ctx context.Context, tr track, s QuizState) (QuizState, Event, error) {
	req := QuestionRequest{
		Theme:              tr.theme,
		Difficulty:         s.Difficulty,
		QuestionType:       s.CurrentQuestionType,
		PriorQuestionTexts: s.questionTexts(),
	}
	if tr.usesContext {
		req.ContextSummary = s.ContextSummary
	}

	generated, err := a.questions.GenerateQuestion(ctx, req)
	if err != nil {
		return s, 0, err
	}
	if generated == nil {
		return s, 0, errNoOutput
	}

	q, err := validateQuestion(generated, s.CurrentQuestionType)
	if err != nil {
		return s, 0, err
	}

	s.Questions = append(s.Questions, q)
	return s, EventQuestionAdded, nil
}

func (a *Agent) finalize(ctx context.Context, s QuizState) (QuizState, Event, error) {
	td, err := a.finalizer.Finalize(ctx, FinalizeRequest{
		Theme:         s.Theme,
		Difficulty:    s.Difficulty,
		QuestionTexts: s.questionTexts(),
	})
	if err != nil {
		return s, 0, err
	}
	if td != nil {
		s.Title = lo.ToPtr(td.Title)
		s.Description = lo.ToPtr(td.Description)
	}
	return s, EventFinalized, nil
}

func validateQuestion(g *GeneratedQuestion, qType QuestionType) (Question, error) {
	if strings.TrimSpace(g.Question) == "" {
		return Question{}, fmt.Errorf("%w: empty question text", ErrStructuralValidation)
	}

	if len(g.PossibleAnswers) != len(Labels) {
		return Question{}, fmt.Errorf("%w: expected %d options, got %d", ErrStructuralValidation, len(Labels), len(g.PossibleAnswers))
	}
	for _, label := range Labels {
		if strings.TrimSpace(g.PossibleAnswers[label]) == "" {
			return Question{}, fmt.Errorf("%w: missing option %s", ErrStructuralValidation, label)
		}
	}

	if len(g.CorrectAnswer) == 0 {
		return Question{}, fmt.Errorf("%w: empty correct answer set", ErrStructuralValidation)
	}
	for _, label := range g.CorrectAnswer {
		if !lo.Contains(Labels, label) {
			return Question{}, fmt.Errorf("%w: unknown label %q", ErrStructuralValidation, label)
		}
	}
	if len(lo.Uniq(g.CorrectAnswer)) != len(g.CorrectAnswer) {
		return Question{}, fmt.Errorf("%w: duplicate correct labels", ErrStructuralValidation)
	}
	minN, maxN := qType.CorrectRange()
	if n := len(g.CorrectAnswer); n < minN || n > maxN {
		return Question{}, fmt.Errorf("%w: %s needs %d-%d correct labels, got %d", ErrStructuralValidation, qType, minN, maxN, n)
	}

	return Question{
		Text: g.Question,
		Options: Options{
			A: g.PossibleAnswers["A"],
			B: g.PossibleAnswers["B"],
			C: g.PossibleAnswers["C"],
			D: g.PossibleAnswers["D"],
		},
		Type:          qType,
		CorrectLabels: append([]string(nil), g.CorrectAnswer...),
	}, nil
}
