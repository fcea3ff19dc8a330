package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Nilax-Kundu/AI-Diary/internal/auth"
	"github.com/Nilax-Kundu/AI-Diary/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Service seams, implemented by the core package and faked in tests.
type ChatService interface {
	StoreMessage(ctx context.Context, userID, text string) error
}

type ProfileService interface {
	SetProfile(ctx context.Context, userID, name, pfp string) error
}

type SummaryService interface {
	SummarizeRecent(ctx context.Context, userID string) (string, error)
}

type RiddleService interface {
	GetRiddle(ctx context.Context, userID string) (question string, completedToday bool, err error)
	VerifyAnswer(ctx context.Context, userID, answer string) (bool, error)
}

type APIHandler struct {
	chat    ChatService
	profile ProfileService
	summary SummaryService
	riddle  RiddleService
	logger  zerolog.Logger
}

func NewAPIHandler(chat ChatService, profile ProfileService, summary SummaryService, riddle RiddleService, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		chat:    chat,
		profile: profile,
		summary: summary,
		riddle:  riddle,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// JWTAuthMiddleware requires a Bearer token whose subject matches the
// {userID} path parameter. Wired into the router only when an auth secret
// is configured.
func (h *APIHandler) JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			subject, err := auth.ValidateToken(secret, tokenString)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			if userID := chi.URLParam(r, "userID"); userID != "" && userID != subject {
				respondError(w, http.StatusForbidden, "Token does not match the requested user")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (h *APIHandler) StoreChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	message := r.URL.Query().Get("message")
	if message == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'message' is required")
		return
	}

	if err := h.chat.StoreMessage(r.Context(), userID, message); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to store chat message")
		respondError(w, http.StatusInternalServerError, "Failed to store chat message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Chat stored successfully"})
}

func (h *APIHandler) SetProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	// Defaults apply only when a parameter is absent; an explicit empty
	// value is kept.
	q := r.URL.Query()
	name := core.DefaultAIName
	if q.Has("name") {
		name = q.Get("name")
	}
	pfp := core.DefaultPfp
	if q.Has("pfp") {
		pfp = q.Get("pfp")
	}

	if err := h.profile.SetProfile(r.Context(), userID, name, pfp); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update AI profile")
		respondError(w, http.StatusInternalServerError, "Failed to update AI profile")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "AI profile updated"})
}

func (h *APIHandler) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	summary, err := h.summary.SummarizeRecent(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to summarize chats")
		respondError(w, http.StatusInternalServerError, "Failed to summarize chats")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (h *APIHandler) GetRiddleHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	question, completedToday, err := h.riddle.GetRiddle(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to get riddle")
		respondError(w, http.StatusInternalServerError, "Failed to get riddle")
		return
	}

	if completedToday {
		respondJSON(w, http.StatusOK, map[string]string{"message": core.CompletedTodayMessage})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"riddle": question})
}

func (h *APIHandler) VerifyAnswerHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	answer := r.URL.Query().Get("answer")
	if answer == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'answer' is required")
		return
	}

	correct, err := h.riddle.VerifyAnswer(r.Context(), userID, answer)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoRiddle):
			respondError(w, http.StatusBadRequest, "No riddle issued yet. Fetch one from /get_riddle first.")
		case errors.Is(err, core.ErrUnknownRiddle):
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Riddle state does not match the catalog")
			respondError(w, http.StatusInternalServerError, "Stored riddle state is corrupt")
		default:
			h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to verify answer")
			respondError(w, http.StatusInternalServerError, "Failed to verify answer")
		}
		return
	}

	if correct {
		respondJSON(w, http.StatusOK, map[string]string{"message": core.CorrectAnswerMessage})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": core.WrongAnswerMessage})
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
