package catalog

import (
	"fmt"

	"AuraFM/model"
)

const fallbackAudioURL = "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"

// defaultTracks returns the bundled demo catalog. It is used whenever no
// external catalog file is configured, and as the fallback source when the
// remote catalog is unavailable.
func defaultTracks() []model.Track {
	tracks := []model.Track{
		{
			TrackID:        "music_1",
			Title:          "Welcome to Music",
			Artist:         "Demo Artist",
			AlbumArt:       "https://via.placeholder.com/250x250/FF6B35/FFFFFF?text=1",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3",
			CollectionName: "Demo Collection",
			Duration:       372,
			Genre:          "Electronic",
		},
		{
			TrackID:        "music_2",
			Title:          "Jazz Cafe",
			Artist:         "Jazz Ensemble",
			AlbumArt:       "https://via.placeholder.com/250x250/4ECDC4/FFFFFF?text=2",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-2.mp3",
			CollectionName: "Jazz Collection",
			Duration:       425,
			Genre:          "Jazz",
		},
		{
			TrackID:        "music_3",
			Title:          "Rock Anthem",
			Artist:         "Rock Band",
			AlbumArt:       "https://via.placeholder.com/250x250/45B7D1/FFFFFF?text=3",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-3.mp3",
			CollectionName: "Rock Collection",
			Duration:       340,
			Genre:          "Rock",
		},
		{
			TrackID:        "music_4",
			Title:          "Classical Piano",
			Artist:         "Piano Master",
			AlbumArt:       "https://via.placeholder.com/250x250/FED766/000000?text=4",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-4.mp3",
			CollectionName: "Classical Collection",
			Duration:       310,
			Genre:          "Classical",
		},
		{
			TrackID:        "music_5",
			Title:          "Pop Sensation",
			Artist:         "Pop Star",
			AlbumArt:       "https://via.placeholder.com/250x250/F39C12/FFFFFF?text=5",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-5.mp3",
			CollectionName: "Pop Collection",
			Duration:       350,
			Genre:          "Pop",
		},
		{
			TrackID:        "music_6",
			Title:          "Ambient Dreams",
			Artist:         "Ambient Producer",
			AlbumArt:       "https://via.placeholder.com/250x250/9B59B6/FFFFFF?text=6",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-6.mp3",
			CollectionName: "Ambient Collection",
			Duration:       400,
			Genre:          "Ambient",
		},
		{
			TrackID:        "music_7",
			Title:          "Folk Acoustic",
			Artist:         "Folk Singer",
			AlbumArt:       "https://via.placeholder.com/250x250/E74C3C/FFFFFF?text=7",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-7.mp3",
			CollectionName: "Folk Collection",
			Duration:       320,
			Genre:          "Folk",
		},
		{
			TrackID:        "music_8",
			Title:          "Hip Hop Beat",
			Artist:         "Hip Hop Producer",
			AlbumArt:       "https://via.placeholder.com/250x250/8E44AD/FFFFFF?text=8",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-8.mp3",
			CollectionName: "Hip Hop Collection",
			Duration:       220,
			Genre:          "Hip Hop",
		},
		{
			TrackID:        "music_9",
			Title:          "Country Road",
			Artist:         "Country Artist",
			AlbumArt:       "https://via.placeholder.com/250x250/27AE60/FFFFFF?text=9",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-9.mp3",
			CollectionName: "Country Collection",
			Duration:       260,
			Genre:          "Country",
		},
		{
			TrackID:        "music_10",
			Title:          "Blues Guitar",
			Artist:         "Blues Legend",
			AlbumArt:       "https://via.placeholder.com/250x250/8B4513/FFFFFF?text=10",
			PreviewURL:     "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-10.mp3",
			CollectionName: "Blues Collection",
			Duration:       380,
			Genre:          "Blues",
		},
	}

	// Generic fillers so browse pages past the curated entries still have
	// content.
	genres := []string{"Pop", "Rock", "Jazz", "Classical", "Electronic", "Hip Hop", "Country", "Folk", "Ambient", "Chill"}
	colors := []string{"FF5733", "33FF57", "3357FF", "F033FF", "FF33A8", "33FFF8", "FF8333", "8B33FF", "33FF83", "FF3380"}

	for i := 20; i < 60; i++ {
		tracks = append(tracks, model.Track{
			TrackID:        fmt.Sprintf("collection_%d", i),
			Title:          fmt.Sprintf("Track %d", i-19),
			Artist:         fmt.Sprintf("Artist %d", (i%8)+1),
			AlbumArt:       fmt.Sprintf("https://via.placeholder.com/250x250/%s/FFFFFF?text=%d", colors[i%len(colors)], i-19),
			PreviewURL:     fallbackAudioURL,
			CollectionName: fmt.Sprintf("Collection %d", i/10+1),
			Duration:       300,
			Genre:          genres[i%len(genres)],
		})
	}

	return tracks
}
