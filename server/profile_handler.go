package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"AuraFM/logger"
	"AuraFM/model"
	"AuraFM/repository"
)

// FavoriteRequest is the add-favorite request body.
type FavoriteRequest struct {
	TrackID  string `json:"trackId"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	AlbumArt string `json:"albumArt"`
}

// ProfileHandler handles GET /api/profile for the authenticated user.
func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Error("Failed to get user", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HistoryHandler handles GET /api/profile/history, the user's recent
// listening events.
func (h *APIHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	events, err := h.historyRepo.RecentByUser(r.Context(), userID, 50)
	if err != nil {
		logger.Error("Failed to load listening history", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if events == nil {
		events = []model.ListeningEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// ListFavoritesHandler handles GET /api/favorites.
func (h *APIHandler) ListFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	favorites, err := h.favoriteRepo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to list favorites", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if favorites == nil {
		favorites = []model.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

// AddFavoriteHandler handles POST /api/favorites.
func (h *APIHandler) AddFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TrackID == "" {
		writeError(w, http.StatusBadRequest, "Track id is required")
		return
	}

	favorite := &model.Favorite{
		UserID:   userID,
		TrackID:  req.TrackID,
		Title:    req.Title,
		Artist:   req.Artist,
		AlbumArt: req.AlbumArt,
	}
	if err := h.favoriteRepo.Add(r.Context(), favorite); err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			writeError(w, http.StatusBadRequest, "Track already in favorites")
			return
		}
		logger.Error("Failed to add favorite", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, favorite)
}

// RemoveFavoriteHandler handles DELETE /api/favorites/{trackId}.
func (h *APIHandler) RemoveFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.favoriteRepo.Remove(r.Context(), userID, mux.Vars(r)["trackId"]); err != nil {
		logger.Error("Failed to remove favorite", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
