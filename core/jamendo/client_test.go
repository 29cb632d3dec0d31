package jamendo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AuraFM/config"
	"AuraFM/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.Config{
		JamendoAPIURL:   srv.URL,
		JamendoClientID: "test-client",
	})
	client.SetBaseURL(srv.URL)
	return client
}

func TestTracks(t *testing.T) {
	t.Run("success maps results", func(t *testing.T) {
		var gotQuery map[string]string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			gotQuery = map[string]string{
				"client_id":   q.Get("client_id"),
				"format":      q.Get("format"),
				"include":     q.Get("include"),
				"audioformat": q.Get("audioformat"),
				"search":      q.Get("search"),
				"order":       q.Get("order"),
				"limit":       q.Get("limit"),
				"offset":      q.Get("offset"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"headers": {"status": "success", "code": 0, "results_count": 1},
				"results": [{
					"id": "168",
					"name": "Sample Song",
					"artist_name": "Sample Artist",
					"album_name": "Sample Album",
					"album_image": "http://img/album.jpg",
					"audio": "http://audio/168.mp3",
					"duration": 183,
					"musicinfo": {"tags": {"genres": ["rock"], "instruments": [], "vartags": ["upbeat"]}}
				}]
			}`))
		})

		tracks, err := client.Tracks(context.Background(), TrackQuery{
			Search: "sample",
			Order:  OrderPopularityTotal,
			Limit:  20,
			Offset: 40,
		})
		require.NoError(t, err)
		require.Len(t, tracks, 1)

		assert.Equal(t, "jamendo_168", tracks[0].TrackID)
		assert.Equal(t, "Sample Song", tracks[0].Title)
		assert.Equal(t, "rock", tracks[0].Genre)
		assert.Equal(t, "http://audio/168.mp3", tracks[0].PreviewURL)

		assert.Equal(t, "test-client", gotQuery["client_id"])
		assert.Equal(t, "json", gotQuery["format"])
		assert.Equal(t, "musicinfo", gotQuery["include"])
		assert.Equal(t, "mp32", gotQuery["audioformat"])
		assert.Equal(t, "sample", gotQuery["search"])
		assert.Equal(t, "popularity_total", gotQuery["order"])
		assert.Equal(t, "20", gotQuery["limit"])
		assert.Equal(t, "40", gotQuery["offset"])
	})

	t.Run("error envelope is a failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"headers": {"status": "failed", "code": 5, "error_message": "invalid client"}, "results": []}`))
		})

		_, err := client.Tracks(context.Background(), TrackQuery{Limit: 20})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid client")
	})

	t.Run("non-200 status is a failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.Tracks(context.Background(), TrackQuery{Limit: 20})
		assert.Error(t, err)
	})

	t.Run("malformed body is a failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>gateway error</html>`))
		})

		_, err := client.Tracks(context.Background(), TrackQuery{Limit: 20})
		assert.Error(t, err)
	})
}

func TestTrackByID(t *testing.T) {
	t.Run("returns raw record", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "168", r.URL.Query().Get("id"))
			w.Write([]byte(`{
				"headers": {"status": "success"},
				"results": [{"id": "168", "name": "Sample", "audio": "http://audio/168.mp3"}]
			}`))
		})

		track, err := client.TrackByID(context.Background(), "168")
		require.NoError(t, err)
		assert.Equal(t, "168", track.ID)
		assert.Equal(t, "http://audio/168.mp3", track.Audio)
	})

	t.Run("empty result set is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"headers": {"status": "success"}, "results": []}`))
		})

		_, err := client.TrackByID(context.Background(), "999")
		assert.Error(t, err)
	})
}

func TestMapTrack(t *testing.T) {
	t.Run("absent metadata gets defaults", func(t *testing.T) {
		track := MapTrack(&model.JamendoTrack{ID: "1", Audio: "http://a/1.mp3"})

		assert.Equal(t, "jamendo_1", track.TrackID)
		assert.Equal(t, model.UnknownTitle, track.Title)
		assert.Equal(t, model.UnknownArtist, track.Artist)
		assert.Equal(t, model.UnknownGenre, track.Genre)
	})

	t.Run("falls back to original album image", func(t *testing.T) {
		track := MapTrack(&model.JamendoTrack{
			ID:                 "2",
			AlbumImageOriginal: "http://img/orig.jpg",
		})
		assert.Equal(t, "http://img/orig.jpg", track.AlbumArt)
	})

	t.Run("first genre wins", func(t *testing.T) {
		track := MapTrack(&model.JamendoTrack{
			ID: "3",
			MusicInfo: &model.JamendoMusicInfo{
				Tags: model.JamendoTags{Genres: []string{"jazz", "funk"}},
			},
		})
		assert.Equal(t, "jazz", track.Genre)
	})
}
