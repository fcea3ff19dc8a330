package core

import (
	"context"
	"fmt"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/Nilax-Kundu/AI-Diary/internal/utils"
	"github.com/rs/zerolog"
)

// Defaults applied at the API boundary when a field is absent.
const (
	DefaultAIName = "Hello World"
	DefaultPfp    = ""
)

// ProfileStore is the slice of the document store the profile service needs.
type ProfileStore interface {
	MergeProfile(ctx context.Context, userID string, p store.Profile, createdAt time.Time) error
}

// ProfileService sanitizes and merges AI assistant profile settings.
type ProfileService struct {
	store  ProfileStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewProfileService(st ProfileStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		store:  st,
		logger: logger.With().Str("component", "profile_service").Logger(),
		now:    time.Now,
	}
}

// SetProfile sanitizes both fields and merges them into the user's profile
// sub-document. Unrelated fields are never deleted.
func (s *ProfileService) SetProfile(ctx context.Context, userID, name, pfp string) error {
	p := store.Profile{
		Name: utils.Sanitize(name),
		Pfp:  utils.Sanitize(pfp),
	}

	if err := s.store.MergeProfile(ctx, userID, p, s.now()); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Debug().Str("user_id", userID).Str("name", p.Name).Msg("Updated AI profile")
	return nil
}
