package server

import (
	"net/http"
	"strconv"

	"AuraFM/model"
)

// TrackListResponse is the search and browse response shape.
type TrackListResponse struct {
	Tracks []model.Track `json:"tracks"`
	Page   int           `json:"page"`
}

// SearchHandler serves GET /api/music/search?q=<term>&page=<n>. An empty
// term behaves like browse.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	page := parsePage(r.URL.Query().Get("page"))

	tracks := h.provider.Search(r.Context(), term, page)
	if tracks == nil {
		tracks = []model.Track{}
	}
	writeJSON(w, http.StatusOK, TrackListResponse{Tracks: tracks, Page: page})
}

// BrowseHandler serves GET /api/music/browse?page=<n>, one page of the
// catalog ordered by popularity.
func (h *APIHandler) BrowseHandler(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	tracks := h.provider.Browse(r.Context(), page)
	if tracks == nil {
		tracks = []model.Track{}
	}
	writeJSON(w, http.StatusOK, TrackListResponse{Tracks: tracks, Page: page})
}

// parsePage clamps the page parameter to a non-negative integer, treating
// garbage as page zero.
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0
	}
	return page
}
