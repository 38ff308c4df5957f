package chat

import (
	"github.com/mindcare/wellness-api/internal/llm"
)

type ChatContainer struct {
	Handler *Handler
}

func NewChatContainer(client llm.Client, profiles Profiles, moods Moods) *ChatContainer {
	service := NewService(NewAssistant(client), profiles, moods)
	handler := NewHandler(service)

	return &ChatContainer{
		Handler: handler,
	}
}
