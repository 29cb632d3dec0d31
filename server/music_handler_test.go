package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AuraFM/config"
	"AuraFM/core/auth"
	"AuraFM/core/provider"
)

func TestMusicEndpointsRequireAuth(t *testing.T) {
	auth.Init(&config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour})
	h := newTestHandler(t, &fakeHistoryStore{})

	endpoints := map[string]http.HandlerFunc{
		"/api/music/search": h.AuthMiddleware(h.SearchHandler),
		"/api/music/browse": h.AuthMiddleware(h.BrowseHandler),
	}

	for path, handler := range endpoints {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rr := httptest.NewRecorder()
			handler(rr, req)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)

			token, err := auth.GenerateToken(1, "alice")
			require.NoError(t, err)
			req = httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr = httptest.NewRecorder()
			handler(rr, req)
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestSearchHandlerLocalFallback(t *testing.T) {
	h := newTestHandler(t, &fakeHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/music/search?q=welcome", nil)
	rr := httptest.NewRecorder()
	h.SearchHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp TrackListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Tracks)
	assert.Equal(t, "music_1", resp.Tracks[0].TrackID)
	assert.Equal(t, 0, resp.Page)
}

func TestBrowseHandlerPagination(t *testing.T) {
	h := newTestHandler(t, &fakeHistoryStore{})

	t.Run("first page is full", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/music/browse", nil)
		rr := httptest.NewRecorder()
		h.BrowseHandler(rr, req)

		var resp TrackListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp.Tracks, provider.PageSize)
	})

	t.Run("garbage page parameter reads as zero", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/music/browse?page=banana", nil)
		rr := httptest.NewRecorder()
		h.BrowseHandler(rr, req)

		var resp TrackListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 0, resp.Page)
		assert.Len(t, resp.Tracks, provider.PageSize)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/music/browse?page=99", nil)
		rr := httptest.NewRecorder()
		h.BrowseHandler(rr, req)

		var resp TrackListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Empty(t, resp.Tracks)
		assert.Equal(t, 99, resp.Page)
	})
}

func TestRecommendationsHandler(t *testing.T) {
	t.Run("requires auth", func(t *testing.T) {
		h := newTestHandler(t, &fakeHistoryStore{})

		req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
		rr := httptest.NewRecorder()
		h.RecommendationsHandler(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("remote failure yields an empty list, not an error", func(t *testing.T) {
		h := newTestHandler(t, &fakeHistoryStore{})

		req := streamRequest("unused", "", 1)
		rr := httptest.NewRecorder()
		h.RecommendationsHandler(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"tracks": []}`, rr.Body.String())
	})
}
