package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"AuraFM/model"
)

// Catalog holds the bundled local track list. It backs three things: the
// fallback path of search/browse when the remote catalog is unavailable, the
// local and placeholder resolution tiers of the track resolver, and the
// demo content of a fresh install.
//
// The list is immutable per snapshot; Reload swaps the whole snapshot under
// the lock so readers never observe a partial update.
type Catalog struct {
	mu     sync.RWMutex
	tracks []model.Track
	byID   map[string]int
}

// New creates a catalog populated with the bundled demo tracks.
func New() *Catalog {
	c := &Catalog{}
	c.replace(defaultTracks())
	return c
}

// NewFromTracks creates a catalog over the given track list.
func NewFromTracks(tracks []model.Track) *Catalog {
	c := &Catalog{}
	c.replace(tracks)
	return c
}

// NewFromFile creates a catalog from a JSON file containing an array of
// canonical track objects. An unreadable or invalid file is an error; use
// New for the bundled list.
func NewFromFile(path string) (*Catalog, error) {
	c := &Catalog{}
	if err := c.LoadFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile replaces the catalog content with the tracks from a JSON file.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var tracks []model.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("catalog file %s contains no tracks", path)
	}
	for i, t := range tracks {
		if t.TrackID == "" || t.PreviewURL == "" {
			return fmt.Errorf("catalog file %s: entry %d missing trackId or previewUrl", path, i)
		}
	}

	c.replace(tracks)
	return nil
}

func (c *Catalog) replace(tracks []model.Track) {
	byID := make(map[string]int, len(tracks))
	for i, t := range tracks {
		byID[t.TrackID] = i
	}

	c.mu.Lock()
	c.tracks = tracks
	c.byID = byID
	c.mu.Unlock()
}

// Len returns the number of tracks in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// ByID returns the track with the given id, if present.
func (c *Catalog) ByID(trackID string) (model.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[trackID]
	if !ok {
		return model.Track{}, false
	}
	return c.tracks[i], true
}

// ByIndex returns the track at the given position. Placeholder ids
// ("generated_<n>", "browse_<n>") index into the catalog this way.
func (c *Catalog) ByIndex(index int) (model.Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.tracks) {
		return model.Track{}, false
	}
	return c.tracks[index], true
}

// Page returns a slice of the catalog starting at offset, at most limit
// entries. Out-of-range offsets yield an empty slice.
func (c *Catalog) Page(offset, limit int) []model.Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return pageOf(c.tracks, offset, limit)
}

// Search filters the catalog case-insensitively across title, artist, genre
// and collection name, then paginates. An empty term matches everything.
func (c *Catalog) Search(term string, offset, limit int) []model.Track {
	term = strings.ToLower(strings.TrimSpace(term))

	c.mu.RLock()
	defer c.mu.RUnlock()

	if term == "" {
		return pageOf(c.tracks, offset, limit)
	}

	var matched []model.Track
	for _, t := range c.tracks {
		if strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.Artist), term) ||
			strings.Contains(strings.ToLower(t.Genre), term) ||
			strings.Contains(strings.ToLower(t.CollectionName), term) {
			matched = append(matched, t)
		}
	}
	return pageOf(matched, offset, limit)
}

func pageOf(tracks []model.Track, offset, limit int) []model.Track {
	if offset < 0 || limit <= 0 || offset >= len(tracks) {
		return []model.Track{}
	}
	end := offset + limit
	if end > len(tracks) {
		end = len(tracks)
	}
	page := make([]model.Track, end-offset)
	copy(page, tracks[offset:end])
	return page
}
