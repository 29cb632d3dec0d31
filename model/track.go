package model

// Track is the canonical, provider-agnostic representation of a playable
// track. The TrackID prefix carries the provenance: "jamendo_<id>" for the
// remote catalog, bare ids for the bundled local catalog,
// "generated_<n>"/"browse_<n>" for placeholder slots and "demo_"/"fallback_"
// for synthetic fallbacks.
type Track struct {
	TrackID        string `json:"trackId"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	AlbumArt       string `json:"albumArt,omitempty"`
	PreviewURL     string `json:"previewUrl"`
	CollectionName string `json:"collectionName,omitempty"`
	Duration       int    `json:"duration,omitempty"` // seconds
	Genre          string `json:"genre"`
}

const (
	// Defaults applied when the upstream provider omits metadata.
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownGenre  = "Unknown"
)
