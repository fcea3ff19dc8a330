package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/rs/zerolog"
)

// Riddle is one entry of the static catalog.
type Riddle struct {
	Question string
	Answer   string
}

// DefaultRiddles returns the built-in catalog.
func DefaultRiddles() []Riddle {
	return []Riddle{
		{Question: "The more you take, the more you leave behind. What am I?", Answer: "Footsteps"},
		{Question: "I speak without a mouth and hear without ears. What am I?", Answer: "An echo"},
	}
}

var (
	// ErrNoRiddle means the user has never fetched a riddle.
	ErrNoRiddle = errors.New("no riddle has been issued for this user")
	// ErrUnknownRiddle means the stored riddle is not in the catalog.
	ErrUnknownRiddle = errors.New("stored riddle does not match the catalog")
)

// User-facing result messages.
const (
	CompletedTodayMessage = "You already solved today's riddle. Come back tomorrow!"
	CorrectAnswerMessage  = "Correct! Today's chat is complete."
	WrongAnswerMessage    = "Incorrect answer! Try again."
)

// RiddleStore is the slice of the document store the riddle gate needs.
type RiddleStore interface {
	GetRiddleState(ctx context.Context, userID string) (store.RiddleState, error)
	SetRiddleIssued(ctx context.Context, userID, question string, issuedAt time.Time) error
	SetRiddleCompleted(ctx context.Context, userID, date string) error
}

// RiddleService runs the per-user daily riddle gate: one riddle cycle per
// calendar day, completion keyed by date string.
type RiddleService struct {
	store   RiddleStore
	riddles []Riddle
	logger  zerolog.Logger
	now     func() time.Time
	pick    func(n int) int
}

func NewRiddleService(st RiddleStore, riddles []Riddle, logger zerolog.Logger) *RiddleService {
	return &RiddleService{
		store:   st,
		riddles: riddles,
		logger:  logger.With().Str("component", "riddle_service").Logger(),
		now:     time.Now,
		pick:    rand.Intn,
	}
}

// GetRiddle issues a riddle for the user. If the user already solved
// today's riddle it reports completedToday without changing state.
// Otherwise it picks uniformly among catalog entries differing from the
// previously issued question (falling back to the full catalog), persists
// the new question, clears any prior completion, and returns the question.
func (s *RiddleService) GetRiddle(ctx context.Context, userID string) (question string, completedToday bool, err error) {
	if len(s.riddles) == 0 {
		return "", false, fmt.Errorf("riddle catalog is empty")
	}

	now := s.now()
	state, err := s.store.GetRiddleState(ctx, userID)
	if err != nil {
		return "", false, fmt.Errorf("failed to load riddle state: %w", err)
	}

	if state.LastChatDate == now.Format(dayFormat) {
		return "", true, nil
	}

	candidates := make([]Riddle, 0, len(s.riddles))
	for _, r := range s.riddles {
		if r.Question != state.LastRiddle {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = s.riddles
	}

	chosen := candidates[s.pick(len(candidates))]
	if err := s.store.SetRiddleIssued(ctx, userID, chosen.Question, now); err != nil {
		return "", false, fmt.Errorf("failed to record issued riddle: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Msg("Issued riddle")
	return chosen.Question, false, nil
}

// VerifyAnswer checks the submitted answer against the outstanding riddle.
// A correct answer marks today's chat complete; a wrong answer changes
// nothing. Answers are compared case-insensitively after trimming.
func (s *RiddleService) VerifyAnswer(ctx context.Context, userID, answer string) (bool, error) {
	state, err := s.store.GetRiddleState(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load riddle state: %w", err)
	}
	if state.LastRiddle == "" {
		return false, ErrNoRiddle
	}

	var current *Riddle
	for i := range s.riddles {
		if s.riddles[i].Question == state.LastRiddle {
			current = &s.riddles[i]
			break
		}
	}
	if current == nil {
		return false, fmt.Errorf("%w: %q", ErrUnknownRiddle, state.LastRiddle)
	}

	if !equalsAnswer(answer, current.Answer) {
		return false, nil
	}

	today := s.now().Format(dayFormat)
	if err := s.store.SetRiddleCompleted(ctx, userID, today); err != nil {
		return false, fmt.Errorf("failed to record riddle completion: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Str("date", today).Msg("Riddle completed")
	return true, nil
}

func equalsAnswer(submitted, expected string) bool {
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(expected)
}
