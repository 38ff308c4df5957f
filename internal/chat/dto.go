package chat

// Message is one turn of the conversation history sent by the client.
type Message struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type ChatDTO struct {
	Message        string    `json:"message" validate:"required"`
	MessageHistory []Message `json:"message_history"`
}

type ChatTrialDTO struct {
	UserName       string    `json:"user_name" validate:"required"`
	Message        string    `json:"message" validate:"required"`
	MessageHistory []Message `json:"message_history"`
	CurrentMood    string    `json:"current_mood" validate:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
