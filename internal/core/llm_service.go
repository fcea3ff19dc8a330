package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const (
	defaultSummaryModelName = "gemini-1.5-flash-latest"

	summarySystemInstruction = "You are a text summarization engine for a personal diary. " +
		"Summarize the provided chat log into a single concise paragraph of at least 30 words. " +
		"Return only the summary text, nothing else."
)

// LLMService is the Gemini-backed implementation of Summarizer.
type LLMService struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

func NewLLMService(ctx context.Context, apiKey string, logger zerolog.Logger) (*LLMService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &LLMService{
		client: client,
		model:  defaultSummaryModelName,
		logger: logger.With().Str("component", "llm_service").Logger(),
	}, nil
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing GenAI client")
		}
	}
}

// Summarize condenses one chunk of chat text. Generation is greedy
// (temperature 0) and capped at 150 output tokens; the minimum length is
// part of the system instruction.
func (s *LLMService) Summarize(ctx context.Context, text string) (string, error) {
	model := s.client.GenerativeModel(s.model)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(summarySystemInstruction)},
	}

	maxTokens := int32(150)
	temp := float32(0)
	topK := int32(1)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &maxTokens,
		Temperature:     &temp,
		TopK:            &topK,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini summarization request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned an empty summary response")
	}

	var summary strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			summary.WriteString(string(txt))
		} else {
			s.logger.Warn().Msgf("Gemini response part was not text: %T", part)
		}
	}

	if summary.Len() == 0 {
		return "", fmt.Errorf("gemini summary contained no text parts")
	}

	return strings.TrimSpace(summary.String()), nil
}
