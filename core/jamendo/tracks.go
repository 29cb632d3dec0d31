package jamendo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"AuraFM/model"
)

// Sort orders accepted by the tracks endpoint.
const (
	OrderPopularityTotal = "popularity_total"
	OrderPopularityWeek  = "popularity_week"
)

// TrackQuery describes one request against the /tracks endpoint. Zero-value
// fields are omitted from the query string.
type TrackQuery struct {
	ID     string // exact track id lookup
	Search string // free-text search term
	Tags   string // tag filter, tags joined with "+"
	Order  string // result ordering
	Boost  string // popularity bias for tag queries
	Limit  int
	Offset int
}

// Tracks queries the /tracks endpoint and maps the results to canonical
// track records. A non-success envelope status is returned as an error.
func (c *Client) Tracks(ctx context.Context, q TrackQuery) ([]model.Track, error) {
	resp, err := c.fetchTracks(ctx, q)
	if err != nil {
		return nil, err
	}
	return MapTracks(resp.Results), nil
}

// TrackByID looks up a single track with extended metadata and returns the
// raw record, preserving the full tag groups for the resolver.
func (c *Client) TrackByID(ctx context.Context, id string) (*model.JamendoTrack, error) {
	resp, err := c.fetchTracks(ctx, TrackQuery{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("track %s not found", id)
	}
	return &resp.Results[0], nil
}

func (c *Client) fetchTracks(ctx context.Context, q TrackQuery) (*model.JamendoResponse, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("format", "json")
	params.Set("include", "musicinfo")
	params.Set("audioformat", "mp32")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.ID != "" {
		params.Set("id", q.ID)
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		params.Set("search", term)
	}
	if q.Tags != "" {
		params.Set("tags", q.Tags)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.Boost != "" {
		params.Set("boost", q.Boost)
	}

	reqURL := fmt.Sprintf("%s/tracks?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code %d", resp.StatusCode)
	}

	var result model.JamendoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Headers.Status != "success" {
		return nil, fmt.Errorf("API returned error: %s (code: %d)", result.Headers.ErrorMessage, result.Headers.Code)
	}

	return &result, nil
}

// MapTracks converts Jamendo result rows into canonical track records.
func MapTracks(results []model.JamendoTrack) []model.Track {
	tracks := make([]model.Track, len(results))
	for i := range results {
		tracks[i] = MapTrack(&results[i])
	}
	return tracks
}

// MapTrack converts a single Jamendo result row. The track id carries the
// "jamendo_" provenance prefix; absent metadata gets the canonical defaults.
func MapTrack(t *model.JamendoTrack) model.Track {
	title := t.Name
	if title == "" {
		title = model.UnknownTitle
	}
	artist := t.ArtistName
	if artist == "" {
		artist = model.UnknownArtist
	}
	albumArt := t.AlbumImage
	if albumArt == "" {
		albumArt = t.AlbumImageOriginal
	}
	genre := model.UnknownGenre
	if t.MusicInfo != nil && len(t.MusicInfo.Tags.Genres) > 0 {
		genre = t.MusicInfo.Tags.Genres[0]
	}

	return model.Track{
		TrackID:        "jamendo_" + t.ID,
		Title:          title,
		Artist:         artist,
		AlbumArt:       albumArt,
		PreviewURL:     t.Audio,
		CollectionName: t.AlbumName,
		Duration:       t.Duration,
		Genre:          genre,
	}
}
