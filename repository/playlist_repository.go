package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"AuraFM/model"
)

// ErrPlaylistNotFound is returned when a playlist id does not exist or does
// not belong to the requesting user.
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository defines the interface for playlist operations. All
// reads and writes are scoped to the owning user.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *model.Playlist) error
	GetByID(ctx context.Context, userID int64, id string) (*model.Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error)
	Update(ctx context.Context, playlist *model.Playlist) error
	UpdateCoverPath(ctx context.Context, userID int64, id, coverPath string) error
	Delete(ctx context.Context, userID int64, id string) error
	AddTrack(ctx context.Context, userID int64, playlistID string, track *model.PlaylistTrack) error
	RemoveTrack(ctx context.Context, userID int64, playlistID, trackID string) error
}

// gormPlaylistRepository implements PlaylistRepository on GORM.
type gormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository creates a new gormPlaylistRepository.
func NewGormPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &gormPlaylistRepository{db: db}
}

// Create stores a new playlist, assigning it a UUID when the caller left
// the id empty.
func (r *gormPlaylistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

// GetByID loads a playlist with its tracks ordered by position.
func (r *gormPlaylistRepository) GetByID(ctx context.Context, userID int64, id string) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).
		Preload("Tracks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&playlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to query playlist %s: %w", id, err)
	}
	return &playlist, nil
}

// ListByUser returns all of a user's playlists, newest first, without the
// track lists.
func (r *gormPlaylistRepository) ListByUser(ctx context.Context, userID int64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists for user %d: %w", userID, err)
	}
	return playlists, nil
}

// Update saves the playlist's name and description.
func (r *gormPlaylistRepository) Update(ctx context.Context, playlist *model.Playlist) error {
	result := r.db.WithContext(ctx).
		Model(&model.Playlist{}).
		Where("id = ? AND user_id = ?", playlist.ID, playlist.UserID).
		Updates(map[string]interface{}{
			"name":        playlist.Name,
			"description": playlist.Description,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update playlist %s: %w", playlist.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// UpdateCoverPath records the object path of an uploaded cover image.
func (r *gormPlaylistRepository) UpdateCoverPath(ctx context.Context, userID int64, id, coverPath string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Playlist{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("cover_path", coverPath)
	if result.Error != nil {
		return fmt.Errorf("failed to update playlist cover %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// Delete removes a playlist and, through the foreign key, its tracks.
func (r *gormPlaylistRepository) Delete(ctx context.Context, userID int64, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Playlist{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete playlist %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// AddTrack appends a track at the end of the playlist.
func (r *gormPlaylistRepository) AddTrack(ctx context.Context, userID int64, playlistID string, track *model.PlaylistTrack) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var playlist model.Playlist
		err := tx.Where("id = ? AND user_id = ?", playlistID, userID).First(&playlist).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaylistNotFound
			}
			return fmt.Errorf("failed to query playlist %s: %w", playlistID, err)
		}

		var maxPosition int
		tx.Model(&model.PlaylistTrack{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition)

		track.PlaylistID = playlistID
		track.Position = maxPosition + 1
		if err := tx.Create(track).Error; err != nil {
			return fmt.Errorf("failed to add track to playlist %s: %w", playlistID, err)
		}
		return nil
	})
}

// RemoveTrack deletes a track from the playlist.
func (r *gormPlaylistRepository) RemoveTrack(ctx context.Context, userID int64, playlistID, trackID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var playlist model.Playlist
		err := tx.Where("id = ? AND user_id = ?", playlistID, userID).First(&playlist).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaylistNotFound
			}
			return fmt.Errorf("failed to query playlist %s: %w", playlistID, err)
		}

		result := tx.Where("playlist_id = ? AND track_id = ?", playlistID, trackID).
			Delete(&model.PlaylistTrack{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove track %s from playlist %s: %w", trackID, playlistID, result.Error)
		}
		return nil
	})
}
