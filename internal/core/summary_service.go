package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/Nilax-Kundu/AI-Diary/internal/utils"
	"github.com/rs/zerolog"
)

const (
	DefaultSummaryWindowDays = 7
	DefaultChunkWordBudget   = 500
)

// Summarizer condenses one chunk of chat text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// MessageReader is the slice of the document store the summary service needs.
type MessageReader interface {
	ChatDaysSince(ctx context.Context, userID, fromDate string) ([]store.ChatDay, error)
}

// SummaryService summarizes a user's trailing window of chat messages.
type SummaryService struct {
	store      MessageReader
	summarizer Summarizer
	windowDays int
	wordBudget int
	logger     zerolog.Logger
	now        func() time.Time
}

func NewSummaryService(st MessageReader, sm Summarizer, windowDays, wordBudget int, logger zerolog.Logger) *SummaryService {
	if windowDays <= 0 {
		windowDays = DefaultSummaryWindowDays
	}
	if wordBudget <= 0 {
		wordBudget = DefaultChunkWordBudget
	}
	return &SummaryService{
		store:      st,
		summarizer: sm,
		windowDays: windowDays,
		wordBudget: wordBudget,
		logger:     logger.With().Str("component", "summary_service").Logger(),
		now:        time.Now,
	}
}

// SummarizeRecent collects the user's messages from the trailing window,
// deduplicates identical texts (keeping first-seen order), chunks the
// joined text by word budget, and summarizes each chunk in order. With no
// messages in the window it returns the sentinel without calling the model.
func (s *SummaryService) SummarizeRecent(ctx context.Context, userID string) (string, error) {
	now := s.now()
	from := now.AddDate(0, 0, -s.windowDays)

	days, err := s.store.ChatDaysSince(ctx, userID, from.Format(dayFormat))
	if err != nil {
		return "", fmt.Errorf("failed to load chat history: %w", err)
	}

	seen := make(map[string]struct{})
	var texts []string
	for _, day := range days {
		for _, msg := range day.Messages {
			if msg.Timestamp.Before(from) || msg.Timestamp.After(now) {
				continue
			}
			if _, ok := seen[msg.Text]; ok {
				continue
			}
			seen[msg.Text] = struct{}{}
			texts = append(texts, msg.Text)
		}
	}

	if len(texts) == 0 {
		return fmt.Sprintf("No messages found in the past %d days.", s.windowDays), nil
	}

	chunks := utils.ChunkWords(strings.Join(texts, " "), s.wordBudget)
	s.logger.Debug().
		Str("user_id", userID).
		Int("unique_messages", len(texts)).
		Int("chunks", len(chunks)).
		Msg("Summarizing chat history")

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.summarizer.Summarize(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("failed to summarize chunk %d of %d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
	}

	return strings.Join(summaries, " "), nil
}
