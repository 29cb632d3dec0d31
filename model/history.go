package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TagList stores an ordered list of mood tags as a JSON text column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tag list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for tag list", value)
	}
	if len(data) == 0 {
		*t = TagList{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// ListeningEvent is one entry of a user's listening history. Events are
// append-only: they are never updated and never deleted by the API.
type ListeningEvent struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index:idx_history_user_track,priority:1" json:"userId"`
	TrackID    string    `gorm:"size:191;not null;index:idx_history_user_track,priority:2" json:"trackId"`
	MoodTags   TagList   `gorm:"type:text" json:"moodTags"`
	ListenedAt time.Time `gorm:"not null;index" json:"listenedAt"`
}

// TableName pins the table name used by GORM.
func (ListeningEvent) TableName() string {
	return "listening_history"
}
