package core

import (
	"context"
	"fmt"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/rs/zerolog"
)

const dayFormat = "2006-01-02"

// ChatStore is the slice of the document store the chat service needs.
type ChatStore interface {
	EnsureUser(ctx context.Context, userID string, createdAt time.Time) error
	AppendMessage(ctx context.Context, userID, date string, msg store.Message) error
}

// ChatService appends chat messages to the user's per-day message log.
type ChatService struct {
	store  ChatStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewChatService(st ChatStore, logger zerolog.Logger) *ChatService {
	return &ChatService{
		store:  st,
		logger: logger.With().Str("component", "chat_service").Logger(),
		now:    time.Now,
	}
}

// StoreMessage ensures the user exists and appends the message with a
// server-assigned timestamp to today's day document.
func (s *ChatService) StoreMessage(ctx context.Context, userID, text string) error {
	now := s.now()
	today := now.Format(dayFormat)

	if err := s.store.EnsureUser(ctx, userID, now); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	msg := store.Message{Text: text, Timestamp: now}
	if err := s.store.AppendMessage(ctx, userID, today, msg); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Str("date", today).Msg("Stored chat message")
	return nil
}
