package aiquiz_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mindcare/wellness-api/internal/aiquiz"
	"github.com/mindcare/wellness-api/internal/llm"
)

type recordingClient struct {
	system, user string
	schema       llm.Schema
	payload      string
	err          error
}

func (c *recordingClient) GenerateJSON(_ context.Context, system, user string, schema llm.Schema, out interface{}) error {
	c.system, c.user, c.schema = system, user, schema
	if c.err != nil {
		return c.err
	}
	return json.Unmarshal([]byte(c.payload), out)
}

func TestPrompts(t *testing.T) {
	prompts, err := aiquiz.LoadPrompts()
	if err != nil {
		t.Fatalf("LoadPrompts failed: %v", err)
	}

	summary := "feels isolated at work"
	mh, err := prompts.Question(aiquiz.QuestionRequest{
		Theme:              aiquiz.ThemeMentalHealth,
		Difficulty:         aiquiz.DifficultyHard,
		QuestionType:       aiquiz.MultipleAnswer,
		PriorQuestionTexts: []string{"first?", "second?"},
		ContextSummary:     &summary,
	})
	if err != nil {
		t.Fatalf("Question failed: %v", err)
	}
	for _, want := range []string{"mental health", summary, "first?\nsecond?", "difficulty: hard", "question_type: multiple_answer"} {
		if !strings.Contains(mh, want) {
			t.Errorf("mental health prompt missing %q", want)
		}
	}

	jo, err := prompts.Question(aiquiz.QuestionRequest{
		Theme:        aiquiz.ThemeJudiOnline,
		Difficulty:   aiquiz.DifficultyEasy,
		QuestionType: aiquiz.MultipleChoice,
	})
	if err != nil {
		t.Fatalf("Question failed: %v", err)
	}
	if strings.Contains(jo, "user_condition_summary") {
		t.Error("judi online prompt must not mention the user's condition")
	}

	fin, err := prompts.Finalize(aiquiz.FinalizeRequest{
		Theme:         aiquiz.ThemeJudiOnline,
		Difficulty:    aiquiz.DifficultyMedium,
		QuestionTexts: []string{"q1", "q2"},
	})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if !strings.Contains(fin, "judi_online") || !strings.Contains(fin, "q1\nq2") {
		t.Errorf("unexpected finalize prompt:\n%s", fin)
	}
}

func TestParsePromptsMissingTheme(t *testing.T) {
	_, err := aiquiz.ParsePrompts([]byte("system: hi\nquestions:\n  mental_health: x\nfinalize: y\n"))
	if err == nil {
		t.Fatal("expected error for missing judi_online prompt")
	}
}

func TestLLMQuestionGenerator(t *testing.T) {
	prompts, _ := aiquiz.LoadPrompts()
	client := &recordingClient{payload: `{"question":"What helps?","possible_answers":{"A":"a","B":"b","C":"c","D":"d"},"correct_answer":["B"]}`}

	gq, err := aiquiz.NewLLMQuestionGenerator(client, prompts).GenerateQuestion(context.Background(), aiquiz.QuestionRequest{
		Theme:        aiquiz.ThemeJudiOnline,
		Difficulty:   aiquiz.DifficultyEasy,
		QuestionType: aiquiz.MultipleChoice,
	})
	if err != nil {
		t.Fatalf("GenerateQuestion failed: %v", err)
	}
	if gq.Question != "What helps?" || gq.PossibleAnswers["D"] != "d" || gq.CorrectAnswer[0] != "B" {
		t.Errorf("unexpected question %+v", gq)
	}
	if client.schema.Name != "submit_question" {
		t.Errorf("unexpected schema %s", client.schema.Name)
	}
	if client.system == "" || client.user == "" {
		t.Error("expected both system and user prompts")
	}
}

func TestLLMCollaboratorsEmptyResponse(t *testing.T) {
	prompts, _ := aiquiz.LoadPrompts()
	client := &recordingClient{err: llm.ErrEmptyResponse}

	gq, err := aiquiz.NewLLMQuestionGenerator(client, prompts).GenerateQuestion(context.Background(), aiquiz.QuestionRequest{
		Theme: aiquiz.ThemeJudiOnline, Difficulty: aiquiz.DifficultyEasy, QuestionType: aiquiz.MultipleChoice,
	})
	if gq != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", gq, err)
	}

	td, err := aiquiz.NewLLMFinalizer(client, prompts).Finalize(context.Background(), aiquiz.FinalizeRequest{
		Theme: aiquiz.ThemeJudiOnline, Difficulty: aiquiz.DifficultyEasy,
	})
	if td != nil || err != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", td, err)
	}
}
