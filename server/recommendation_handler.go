package server

import (
	"net/http"

	"AuraFM/model"
)

// RecommendationResponse is the recommendations response shape. Tracks is
// always a list, possibly empty, never null.
type RecommendationResponse struct {
	Tracks []model.Track `json:"tracks"`
}

// RecommendationsHandler serves GET /api/recommendations for the
// authenticated user.
func (h *APIHandler) RecommendationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tracks := h.engine.Recommend(r.Context(), userID)
	if tracks == nil {
		tracks = []model.Track{}
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{Tracks: tracks})
}
