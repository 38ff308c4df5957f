package chat_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mindcare/wellness-api/internal/chat"
	"github.com/mindcare/wellness-api/internal/llm"
)

type stubLLM struct {
	user   string
	schema llm.Schema
	reply  string
	err    error
}

func (s *stubLLM) GenerateJSON(_ context.Context, _, user string, schema llm.Schema, out interface{}) error {
	s.user, s.schema = user, schema
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.reply), out)
}

func TestFormatHistory(t *testing.T) {
	got := chat.FormatHistory([]chat.Message{
		{Role: "user", Message: "I feel tired"},
		{Role: "assistant", Message: ""},
		{Role: "ASSISTANT", Message: "Try to rest"},
		{Message: "thanks"},
	})
	want := "<im_start>User: I feel tired<im_end>\n<im_start>Assistant: Try to rest<im_end>\n<im_start>User: thanks<im_end>"
	if got != want {
		t.Errorf("unexpected history:\n%s\nwant:\n%s", got, want)
	}
	if chat.FormatHistory(nil) != "" {
		t.Errorf("expected empty history for nil input")
	}
}

func TestAssistantReply(t *testing.T) {
	client := &stubLLM{reply: `{"response":"  Take a deep breath.  "}`}
	a := chat.NewAssistant(client)

	got, err := a.Reply(context.Background(), chat.Prompt{
		UserName:    "Dewi",
		CurrentMood: "Sad",
		History:     []chat.Message{{Role: "user", Message: "hello"}},
		Message:     "I cannot sleep",
	})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if got != "Take a deep breath." {
		t.Errorf("unexpected reply %q", got)
	}
	for _, want := range []string{"user_name: Dewi", "current_mood: Sad", "<im_start>User: hello<im_end>", "I cannot sleep"} {
		if !strings.Contains(client.user, want) {
			t.Errorf("prompt misses %q:\n%s", want, client.user)
		}
	}
	if client.schema.Name != "submit_response" {
		t.Errorf("unexpected schema %q", client.schema.Name)
	}

	t.Run("Defaults", func(t *testing.T) {
		if _, err := a.Reply(context.Background(), chat.Prompt{Message: "hi"}); err != nil {
			t.Fatalf("Reply failed: %v", err)
		}
		if !strings.Contains(client.user, "user_name: User") || !strings.Contains(client.user, "current_mood: neutral") {
			t.Errorf("expected default name and mood in prompt:\n%s", client.user)
		}
	})

	t.Run("EmptyResponse", func(t *testing.T) {
		empty := chat.NewAssistant(&stubLLM{err: llm.ErrEmptyResponse})
		got, err := empty.Reply(context.Background(), chat.Prompt{Message: "hi"})
		if err != nil || got != "" {
			t.Errorf("expected empty reply without error, got %q, %v", got, err)
		}
	})
}
