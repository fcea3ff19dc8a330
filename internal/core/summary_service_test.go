package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Nilax-Kundu/AI-Diary/internal/store"
	"github.com/rs/zerolog"
)

type fakeMessageReader struct {
	days     []store.ChatDay
	err      error
	lastFrom string
}

func (f *fakeMessageReader) ChatDaysSince(_ context.Context, _ string, fromDate string) ([]store.ChatDay, error) {
	f.lastFrom = fromDate
	return f.days, f.err
}

type fakeSummarizer struct {
	calls []string
	err   error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("summary#%d", len(f.calls)), nil
}

func newTestSummaryService(r MessageReader, sm Summarizer, at time.Time) *SummaryService {
	s := NewSummaryService(r, sm, 7, 500, zerolog.Nop())
	s.now = func() time.Time { return at }
	return s
}

func TestSummarizeRecentNoMessages(t *testing.T) {
	reader := &fakeMessageReader{}
	sm := &fakeSummarizer{}
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s := newTestSummaryService(reader, sm, now)

	got, err := s.SummarizeRecent(context.Background(), "u1")
	if err != nil {
		t.Fatalf("SummarizeRecent failed: %v", err)
	}
	if got != "No messages found in the past 7 days." {
		t.Errorf("got %q, want the sentinel message", got)
	}
	if len(sm.calls) != 0 {
		t.Errorf("summarizer was called %d times for an empty window", len(sm.calls))
	}
	if reader.lastFrom != "2026-03-03" {
		t.Errorf("window lower bound = %q, want 2026-03-03", reader.lastFrom)
	}
}

func TestSummarizeRecentDeduplicatesAndJoins(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	ts := now.Add(-time.Hour)
	reader := &fakeMessageReader{days: []store.ChatDay{
		{Date: "2026-03-09", Messages: []store.Message{
			{Text: "went hiking", Timestamp: ts},
			{Text: "saw a fox", Timestamp: ts},
		}},
		{Date: "2026-03-10", Messages: []store.Message{
			{Text: "went hiking", Timestamp: ts},
			{Text: "rain all day", Timestamp: ts},
		}},
	}}
	sm := &fakeSummarizer{}
	s := newTestSummaryService(reader, sm, now)

	got, err := s.SummarizeRecent(context.Background(), "u1")
	if err != nil {
		t.Fatalf("SummarizeRecent failed: %v", err)
	}
	if len(sm.calls) != 1 {
		t.Fatalf("summarizer called %d times, want 1", len(sm.calls))
	}
	want := "went hiking saw a fox rain all day"
	if sm.calls[0] != want {
		t.Errorf("summarizer input = %q, want %q", sm.calls[0], want)
	}
	if got != "summary#1" {
		t.Errorf("got %q, want %q", got, "summary#1")
	}
}

func TestSummarizeRecentFiltersByTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	reader := &fakeMessageReader{days: []store.ChatDay{
		{Date: "2026-03-03", Messages: []store.Message{
			{Text: "too old", Timestamp: now.AddDate(0, 0, -8)},
			{Text: "in window", Timestamp: now.AddDate(0, 0, -6)},
		}},
	}}
	sm := &fakeSummarizer{}
	s := newTestSummaryService(reader, sm, now)

	if _, err := s.SummarizeRecent(context.Background(), "u1"); err != nil {
		t.Fatalf("SummarizeRecent failed: %v", err)
	}
	if len(sm.calls) != 1 || sm.calls[0] != "in window" {
		t.Errorf("summarizer input = %v, want only the in-window message", sm.calls)
	}
}

func TestSummarizeRecentChunksLongHistory(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	words := make([]string, 1100)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	reader := &fakeMessageReader{days: []store.ChatDay{
		{Date: "2026-03-09", Messages: []store.Message{
			{Text: strings.Join(words, " "), Timestamp: now.Add(-time.Hour)},
		}},
	}}
	sm := &fakeSummarizer{}
	s := newTestSummaryService(reader, sm, now)

	got, err := s.SummarizeRecent(context.Background(), "u1")
	if err != nil {
		t.Fatalf("SummarizeRecent failed: %v", err)
	}
	if len(sm.calls) != 3 {
		t.Fatalf("summarizer called %d times, want 3 chunks for 1100 words", len(sm.calls))
	}
	if got != "summary#1 summary#2 summary#3" {
		t.Errorf("got %q, want chunk summaries joined in order", got)
	}
}

func TestSummarizeRecentChunkFailureAborts(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	reader := &fakeMessageReader{days: []store.ChatDay{
		{Date: "2026-03-09", Messages: []store.Message{
			{Text: "hello", Timestamp: now.Add(-time.Hour)},
		}},
	}}
	wantErr := errors.New("model unavailable")
	s := newTestSummaryService(reader, &fakeSummarizer{err: wantErr}, now)

	if _, err := s.SummarizeRecent(context.Background(), "u1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected summarizer error to propagate, got %v", err)
	}
}

func TestSummarizeRecentStoreFailure(t *testing.T) {
	wantErr := errors.New("store down")
	s := newTestSummaryService(&fakeMessageReader{err: wantErr}, &fakeSummarizer{}, time.Now())

	if _, err := s.SummarizeRecent(context.Background(), "u1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
