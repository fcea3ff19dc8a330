package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/rs/zerolog"
)

type fakeProfileStore struct {
	userID string
	merged store.Profile
	err    error
}

func (f *fakeProfileStore) MergeProfile(_ context.Context, userID string, p store.Profile, _ time.Time) error {
	f.userID = userID
	f.merged = p
	return f.err
}

func TestSetProfileSanitizes(t *testing.T) {
	st := &fakeProfileStore{}
	s := NewProfileService(st, zerolog.Nop())

	err := s.SetProfile(context.Background(), "u1", "  J.a.r!vis ", "https://cdn.example.com/a.png")
	if err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	if st.userID != "u1" {
		t.Errorf("merged for user %q, want u1", st.userID)
	}
	if st.merged.Name != "Jarvis" {
		t.Errorf("sanitized name = %q, want Jarvis", st.merged.Name)
	}
	if st.merged.Pfp != "httpscdnexamplecomapng" {
		t.Errorf("sanitized pfp = %q, want httpscdnexamplecomapng", st.merged.Pfp)
	}
}

func TestSetProfileDefaults(t *testing.T) {
	st := &fakeProfileStore{}
	s := NewProfileService(st, zerolog.Nop())

	if err := s.SetProfile(context.Background(), "u1", DefaultAIName, DefaultPfp); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	if st.merged.Name != "Hello World" {
		t.Errorf("default name = %q, want Hello World", st.merged.Name)
	}
	if st.merged.Pfp != "" {
		t.Errorf("default pfp = %q, want empty", st.merged.Pfp)
	}
}

func TestSetProfileStoreFailure(t *testing.T) {
	wantErr := errors.New("mongo down")
	s := NewProfileService(&fakeProfileStore{err: wantErr}, zerolog.Nop())

	if err := s.SetProfile(context.Background(), "u1", "a", "b"); !errors.Is(err, wantErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
