package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mindcare/wellness-api/internal/config"
)

// maxTrialHistory bounds the history a trial conversation may carry.
const maxTrialHistory = 3

var (
	ErrHistoryTooLong  = errors.New("chat trial message history exceeds 3 messages")
	ErrUserNotFound    = errors.New("user not found")
	ErrMoodNotRecorded = errors.New("current mood not found for the user")
	ErrNoReply         = errors.New("chat failed to get a response")
)

// Profiles resolves the display name of a user. ok is false for unknown users.
type Profiles interface {
	FullName(ctx context.Context, userID uuid.UUID) (name string, ok bool, err error)
}

// Moods reports the mood a user recorded today, or nil.
type Moods interface {
	TodayMood(ctx context.Context, userID uuid.UUID) (*string, error)
}

type Service interface {
	Chat(ctx context.Context, userID uuid.UUID, dto ChatDTO) (*ChatResponse, error)
	ChatTrial(ctx context.Context, dto ChatTrialDTO) (*ChatResponse, error)
}

type service struct {
	assistant Assistant
	profiles  Profiles
	moods     Moods
}

func NewService(assistant Assistant, profiles Profiles, moods Moods) Service {
	return &service{assistant: assistant, profiles: profiles, moods: moods}
}

func (s *service) Chat(ctx context.Context, userID uuid.UUID, dto ChatDTO) (*ChatResponse, error) {
	log := config.WithContext(ctx).WithField("user_id", userID)

	name, ok, err := s.profiles.FullName(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	mood, err := s.moods.TodayMood(ctx, userID)
	if err != nil {
		return nil, err
	}
	if mood == nil {
		log.Warn("Chat requested before today's mood was recorded")
		return nil, ErrMoodNotRecorded
	}

	log.Infof("Sending chat request with mood %s", *mood)
	return s.reply(ctx, Prompt{
		UserName:    name,
		CurrentMood: *mood,
		History:     dto.MessageHistory,
		Message:     dto.Message,
	})
}

func (s *service) ChatTrial(ctx context.Context, dto ChatTrialDTO) (*ChatResponse, error) {
	if len(dto.MessageHistory) > maxTrialHistory {
		config.WithContext(ctx).Warnf("Trial history of %d messages rejected", len(dto.MessageHistory))
		return nil, ErrHistoryTooLong
	}

	return s.reply(ctx, Prompt{
		UserName:    dto.UserName,
		CurrentMood: dto.CurrentMood,
		History:     dto.MessageHistory,
		Message:     dto.Message,
	})
}

func (s *service) reply(ctx context.Context, p Prompt) (*ChatResponse, error) {
	text, err := s.assistant.Reply(ctx, p)
	if err != nil {
		return nil, err
	}
	if text == "" {
		config.WithContext(ctx).Error("Chat model returned no reply")
		return nil, ErrNoReply
	}
	return &ChatResponse{Response: text}, nil
}
