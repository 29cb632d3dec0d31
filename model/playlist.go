package model

import "time"

// Playlist is a user-owned, ordered collection of track references.
type Playlist struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"userId"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"size:1024" json:"description,omitempty"`
	CoverPath   string          `gorm:"size:767" json:"coverPath,omitempty"`
	Tracks      []PlaylistTrack `gorm:"foreignKey:PlaylistID;references:ID;constraint:OnDelete:CASCADE" json:"tracks"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PlaylistTrack is one embedded track entry of a playlist. Only display
// metadata is denormalized here; playback always goes through the resolver.
type PlaylistTrack struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	PlaylistID string `gorm:"size:36;not null;index" json:"-"`
	TrackID    string `gorm:"size:191;not null" json:"trackId"`
	Title      string `gorm:"size:255" json:"title,omitempty"`
	Artist     string `gorm:"size:255" json:"artist,omitempty"`
	AlbumArt   string `gorm:"size:767" json:"albumArt,omitempty"`
	Position   int    `gorm:"not null" json:"position"`
}

// TableName pins the table name used by GORM.
func (Playlist) TableName() string {
	return "playlists"
}

// TableName pins the table name used by GORM.
func (PlaylistTrack) TableName() string {
	return "playlist_tracks"
}
