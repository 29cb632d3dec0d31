package model

// JamendoResponse is the envelope returned by the Jamendo /tracks endpoint.
type JamendoResponse struct {
	Headers JamendoHeaders `json:"headers"`
	Results []JamendoTrack `json:"results"`
}

// JamendoHeaders carries the API status indicator. Any status other than
// "success" is treated as an upstream failure.
type JamendoHeaders struct {
	Status       string `json:"status"`
	Code         int    `json:"code"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResultsCount int    `json:"results_count,omitempty"`
}

// JamendoTrack is a single result row from the Jamendo tracks endpoint.
type JamendoTrack struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	ArtistName         string            `json:"artist_name"`
	AlbumName          string            `json:"album_name"`
	AlbumImage         string            `json:"album_image"`
	AlbumImageOriginal string            `json:"album_image_original"`
	Audio              string            `json:"audio"`
	Duration           int               `json:"duration"`
	MusicInfo          *JamendoMusicInfo `json:"musicinfo,omitempty"`
}

// JamendoMusicInfo is the extended metadata block requested via
// include=musicinfo.
type JamendoMusicInfo struct {
	Tags JamendoTags `json:"tags"`
}

// JamendoTags groups the descriptive tag lists of a track.
type JamendoTags struct {
	Genres      []string `json:"genres"`
	Instruments []string `json:"instruments"`
	Vartags     []string `json:"vartags"`
}

// AllTags concatenates the genre, instrument and vartag groups, each
// defaulting to empty when absent.
func (t *JamendoTrack) AllTags() []string {
	if t.MusicInfo == nil {
		return nil
	}
	tags := make([]string, 0, len(t.MusicInfo.Tags.Genres)+len(t.MusicInfo.Tags.Instruments)+len(t.MusicInfo.Tags.Vartags))
	tags = append(tags, t.MusicInfo.Tags.Genres...)
	tags = append(tags, t.MusicInfo.Tags.Instruments...)
	tags = append(tags, t.MusicInfo.Tags.Vartags...)
	return tags
}
