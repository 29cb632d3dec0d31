package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AuraFM/config"
	"AuraFM/core/catalog"
	"AuraFM/core/history"
	"AuraFM/core/jamendo"
	"AuraFM/core/player"
	"AuraFM/core/provider"
	"AuraFM/core/recommend"
	"AuraFM/core/resolver"
	"AuraFM/model"
	"AuraFM/repository"
)

const testFallbackURL = "https://cdn.example.com/fallback.mp3"

// fakeHistoryStore satisfies both history.Store and the recommendation
// engine's history source.
type fakeHistoryStore struct {
	events []model.ListeningEvent
}

func (s *fakeHistoryStore) Create(_ context.Context, event *model.ListeningEvent) error {
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeHistoryStore) LatestByUserAndTrack(_ context.Context, userID int64, trackID string) (*model.ListeningEvent, error) {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].UserID == userID && s.events[i].TrackID == trackID {
			ev := s.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (s *fakeHistoryStore) RecentByUser(_ context.Context, userID int64, limit int) ([]model.ListeningEvent, error) {
	var out []model.ListeningEvent
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].UserID == userID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

var _ repository.HistoryRepository = (*fakeHistoryStore)(nil)

// offlineRemote stands in for the remote catalog when a test only needs
// the local fallback paths.
type offlineRemote struct{}

func (offlineRemote) Tracks(context.Context, jamendo.TrackQuery) ([]model.Track, error) {
	return nil, errors.New("remote catalog offline")
}

func newTestHandler(t *testing.T, store *fakeHistoryStore) *APIHandler {
	t.Helper()

	local := catalog.New()
	hub := player.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	cfg := &config.Config{
		FallbackAudioURL:  testFallbackURL,
		AudioFetchTimeout: 5 * time.Second,
	}
	return NewAPIHandler(
		nil, nil, nil, store,
		provider.NewAdapter(offlineRemote{}, local),
		resolver.New(local, nil, testFallbackURL),
		history.NewRecorder(store, nil),
		recommend.NewEngine(store, offlineRemote{}),
		hub,
		cfg,
	)
}

func streamRequest(trackID, query string, userID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/stream/"+trackID+query, nil)
	req = mux.SetURLVars(req, map[string]string{"trackId": trackID})
	if userID > 0 {
		ctx := context.WithValue(req.Context(), ctxKeyUserID, userID)
		req = req.WithContext(ctx)
	}
	return req
}

func TestStreamHandlerUnauthorized(t *testing.T) {
	h := newTestHandler(t, &fakeHistoryStore{})

	rr := httptest.NewRecorder()
	h.StreamHandler(rr, streamRequest("music_1", "", 0))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestStreamHandlerJSON(t *testing.T) {
	t.Run("local track resolves to its preview url", func(t *testing.T) {
		store := &fakeHistoryStore{}
		h := newTestHandler(t, store)

		rr := httptest.NewRecorder()
		h.StreamHandler(rr, streamRequest("music_1", "", 1))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp StreamResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "music_1", resp.TrackID)
		assert.NotEmpty(t, resp.PreviewURL)
		assert.Equal(t, []string{"Electronic"}, resp.Tags)

		require.Len(t, store.events, 1)
		assert.Equal(t, "music_1", store.events[0].TrackID)
	})

	t.Run("unknown id still returns 200 with the fallback", func(t *testing.T) {
		h := newTestHandler(t, &fakeHistoryStore{})

		rr := httptest.NewRecorder()
		h.StreamHandler(rr, streamRequest("does_not_exist", "", 1))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp StreamResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, testFallbackURL, resp.PreviewURL)
		assert.Equal(t, []string{"unknown"}, resp.Tags)
	})

	t.Run("replays inside the debounce window log once", func(t *testing.T) {
		store := &fakeHistoryStore{}
		h := newTestHandler(t, store)

		for i := 0; i < 3; i++ {
			rr := httptest.NewRecorder()
			h.StreamHandler(rr, streamRequest("music_1", "", 1))
			assert.Equal(t, http.StatusOK, rr.Code)
		}
		assert.Len(t, store.events, 1)
	})
}

func TestStreamHandlerProxy(t *testing.T) {
	t.Run("relays upstream audio", func(t *testing.T) {
		payload := []byte("ID3fake-mp3-bytes")
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write(payload)
		}))
		defer upstream.Close()

		local := catalog.NewFromTracks([]model.Track{{
			TrackID:    "music_1",
			Title:      "One",
			PreviewURL: upstream.URL + "/1.mp3",
			Genre:      "Electronic",
		}})
		store := &fakeHistoryStore{}
		h := newTestHandler(t, store)
		h.resolver = resolver.New(local, nil, testFallbackURL)

		rr := httptest.NewRecorder()
		h.StreamHandler(rr, streamRequest("music_1", "?proxy=true", 1))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		assert.Equal(t, payload, rr.Body.Bytes())
	})

	t.Run("defaults the content type", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Content-Type"] = nil
			w.Write([]byte("bytes"))
		}))
		defer upstream.Close()

		local := catalog.NewFromTracks([]model.Track{{
			TrackID:    "music_1",
			PreviewURL: upstream.URL,
			Genre:      "Electronic",
		}})
		h := newTestHandler(t, &fakeHistoryStore{})
		h.resolver = resolver.New(local, nil, testFallbackURL)

		rr := httptest.NewRecorder()
		h.StreamHandler(rr, streamRequest("music_1", "?proxy=true", 1))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
	})

	t.Run("upstream error yields 502", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		local := catalog.NewFromTracks([]model.Track{{
			TrackID:    "music_1",
			PreviewURL: upstream.URL,
			Genre:      "Electronic",
		}})
		h := newTestHandler(t, &fakeHistoryStore{})
		h.resolver = resolver.New(local, nil, testFallbackURL)

		rr := httptest.NewRecorder()
		h.StreamHandler(rr, streamRequest("music_1", "?proxy=true", 1))

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to fetch audio")
	})
}
