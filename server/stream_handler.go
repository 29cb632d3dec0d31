package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"AuraFM/core/player"
	"AuraFM/logger"
)

// StreamResponse is the non-proxied stream resolution response.
type StreamResponse struct {
	TrackID    string   `json:"trackId"`
	PreviewURL string   `json:"previewUrl"`
	Tags       []string `json:"tags,omitempty"`
}

// StreamHandler serves GET /api/stream/{trackId}. Resolution always
// succeeds, so the JSON form of this endpoint never fails. With
// proxy=true the audio bytes are relayed through the server instead.
func (h *APIHandler) StreamHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	trackID := mux.Vars(r)["trackId"]
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "Track id is required")
		return
	}

	resolution := h.resolver.Resolve(r.Context(), trackID)

	// History and the live feed are side effects of resolution; neither
	// may interfere with playback.
	h.recorder.Record(r.Context(), userID, trackID, resolution.Tags)
	h.hub.NotifyNowPlaying(userID, player.NowPlayingData{
		TrackID:    trackID,
		PreviewURL: resolution.PreviewURL,
		Tags:       resolution.Tags,
	})

	if proxied, _ := strconv.ParseBool(r.URL.Query().Get("proxy")); proxied {
		h.proxyAudio(w, r, trackID, resolution.PreviewURL)
		return
	}

	writeJSON(w, http.StatusOK, StreamResponse{
		TrackID:    trackID,
		PreviewURL: resolution.PreviewURL,
		Tags:       resolution.Tags,
	})
}

// proxyAudio fetches the audio upstream and relays it to the client. The
// whole payload is buffered in memory before any headers go out, which is
// fine for short previews but rules out large files. Failures before the
// buffer is complete surface as a 502; after headers, the connection just
// ends.
func (h *APIHandler) proxyAudio(w http.ResponseWriter, r *http.Request, trackID, audioURL string) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, audioURL, nil)
	if err != nil {
		logger.Error("Failed to build audio request",
			logger.String("trackId", trackID),
			logger.ErrorField(err),
		)
		writeError(w, http.StatusBadGateway, "Failed to fetch audio")
		return
	}

	resp, err := h.audioClient.Do(req)
	if err != nil {
		logger.Warn("Audio fetch failed",
			logger.String("trackId", trackID),
			logger.String("url", audioURL),
			logger.ErrorField(err),
		)
		writeError(w, http.StatusBadGateway, "Failed to fetch audio")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Audio upstream returned non-OK status",
			logger.String("trackId", trackID),
			logger.Int("status", resp.StatusCode),
		)
		writeError(w, http.StatusBadGateway, "Failed to fetch audio")
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Audio download incomplete",
			logger.String("trackId", trackID),
			logger.ErrorField(err),
		)
		writeError(w, http.StatusBadGateway, "Failed to fetch audio")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		logger.Warn("Audio relay interrupted",
			logger.String("trackId", trackID),
			logger.ErrorField(err),
		)
	}
}
