package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"AuraFM/config"
	"AuraFM/core/auth"
	"AuraFM/core/history"
	"AuraFM/core/player"
	"AuraFM/core/provider"
	"AuraFM/core/recommend"
	"AuraFM/core/resolver"
	"AuraFM/logger"
	"AuraFM/repository"
)

type contextKey string

const (
	ctxKeyUserID   contextKey = "userID"
	ctxKeyUsername contextKey = "username"
)

// APIHandler handles all API requests.
type APIHandler struct {
	userRepo     repository.UserRepository
	playlistRepo repository.PlaylistRepository
	favoriteRepo repository.FavoriteRepository
	historyRepo  repository.HistoryRepository

	provider *provider.Adapter
	resolver *resolver.Resolver
	recorder *history.Recorder
	engine   *recommend.Engine
	hub      *player.Hub

	audioClient *http.Client
	cfg         *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	userRepo repository.UserRepository,
	playlistRepo repository.PlaylistRepository,
	favoriteRepo repository.FavoriteRepository,
	historyRepo repository.HistoryRepository,
	prov *provider.Adapter,
	res *resolver.Resolver,
	recorder *history.Recorder,
	engine *recommend.Engine,
	hub *player.Hub,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		userRepo:     userRepo,
		playlistRepo: playlistRepo,
		favoriteRepo: favoriteRepo,
		historyRepo:  historyRepo,
		provider:     prov,
		resolver:     res,
		recorder:     recorder,
		engine:       engine,
		hub:          hub,
		audioClient:  &http.Client{Timeout: cfg.AudioFetchTimeout},
		cfg:          cfg,
	}
}

// AuthMiddleware checks for a valid JWT token and injects the user identity
// into the request context.
func (h *APIHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxKeyUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetUserIDFromContext extracts the user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(ctxKeyUserID).(int64)
	if !ok {
		return 0, fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// GetUsernameFromContext extracts the username from the request context.
func GetUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(ctxKeyUsername).(string)
	if !ok {
		return "", fmt.Errorf("username not found in context")
	}
	return username, nil
}

// writeJSON serializes the payload with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeError writes a JSON error body in the {"error": ...} shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
