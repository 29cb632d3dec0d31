package model

import "time"

// Favorite is a track a user has marked as favorite. At most one row per
// (user, track) pair.
type Favorite struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_track,priority:1" json:"userId"`
	TrackID   string    `gorm:"size:191;not null;uniqueIndex:uq_user_track,priority:2" json:"trackId"`
	Title     string    `gorm:"size:255" json:"title,omitempty"`
	Artist    string    `gorm:"size:255" json:"artist,omitempty"`
	AlbumArt  string    `gorm:"size:767" json:"albumArt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName pins the table name used by GORM.
func (Favorite) TableName() string {
	return "favorites"
}
