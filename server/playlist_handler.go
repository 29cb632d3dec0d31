package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"AuraFM/logger"
	"AuraFM/model"
	"AuraFM/repository"
	"AuraFM/storage"
)

// PlaylistRequest is the create/update playlist request body.
type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistTrackRequest is the add-track request body.
type PlaylistTrackRequest struct {
	TrackID  string `json:"trackId"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	AlbumArt string `json:"albumArt"`
}

// CreatePlaylistHandler handles POST /api/playlists.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := &model.Playlist{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.playlistRepo.Create(r.Context(), playlist); err != nil {
		logger.Error("Failed to create playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

// ListPlaylistsHandler handles GET /api/playlists.
func (h *APIHandler) ListPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlists, err := h.playlistRepo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("Failed to list playlists", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if playlists == nil {
		playlists = []model.Playlist{}
	}
	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler handles GET /api/playlists/{id}, returning the
// playlist with its ordered track list.
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to get playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

// UpdatePlaylistHandler handles PUT /api/playlists/{id}.
func (h *APIHandler) UpdatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Playlist name is required")
		return
	}

	playlist := &model.Playlist{
		ID:          mux.Vars(r)["id"],
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.playlistRepo.Update(r.Context(), playlist); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to update playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeletePlaylistHandler handles DELETE /api/playlists/{id}.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.playlistRepo.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to delete playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddPlaylistTrackHandler handles POST /api/playlists/{id}/tracks.
func (h *APIHandler) AddPlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaylistTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.TrackID == "" {
		writeError(w, http.StatusBadRequest, "Track id is required")
		return
	}

	track := &model.PlaylistTrack{
		TrackID:  req.TrackID,
		Title:    req.Title,
		Artist:   req.Artist,
		AlbumArt: req.AlbumArt,
	}
	if err := h.playlistRepo.AddTrack(r.Context(), userID, mux.Vars(r)["id"], track); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to add playlist track", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, track)
}

// RemovePlaylistTrackHandler handles DELETE /api/playlists/{id}/tracks/{trackId}.
func (h *APIHandler) RemovePlaylistTrackHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	if err := h.playlistRepo.RemoveTrack(r.Context(), userID, vars["id"], vars["trackId"]); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to remove playlist track", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// UploadPlaylistCoverHandler handles POST /api/playlists/{id}/cover with a
// multipart "coverFile" field.
func (h *APIHandler) UploadPlaylistCoverHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	playlistID := mux.Vars(r)["id"]

	// Ownership check before touching object storage.
	if _, err := h.playlistRepo.GetByID(r.Context(), userID, playlistID); err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to get playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("coverFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing 'coverFile' in form")
		return
	}
	defer file.Close()

	coverPath, err := storage.UploadCover(r.Context(), playlistID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		logger.Error("Failed to upload cover", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to store cover image")
		return
	}

	if err := h.playlistRepo.UpdateCoverPath(r.Context(), userID, playlistID, coverPath); err != nil {
		logger.Error("Failed to save cover path", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"coverPath": coverPath})
}

// GetPlaylistCoverHandler handles GET /api/playlists/{id}/cover, streaming
// the stored image.
func (h *APIHandler) GetPlaylistCoverHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	playlist, err := h.playlistRepo.GetByID(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			writeError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to get playlist", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if playlist.CoverPath == "" {
		writeError(w, http.StatusNotFound, "Playlist has no cover")
		return
	}

	object, contentType, err := storage.FetchCover(r.Context(), playlist.CoverPath)
	if err != nil {
		logger.Error("Failed to fetch cover", logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "Cover not found")
		return
	}
	defer object.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, object); err != nil {
		logger.Warn("Cover download interrupted", logger.ErrorField(err))
	}
}
