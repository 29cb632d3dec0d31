package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"AuraFM/model"
)

// ErrAlreadyFavorite is returned when a track is favorited twice.
var ErrAlreadyFavorite = errors.New("track already in favorites")

// FavoriteRepository defines the interface for favorite track operations.
type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error)
	Add(ctx context.Context, favorite *model.Favorite) error
	Remove(ctx context.Context, userID int64, trackID string) error
}

// gormFavoriteRepository implements FavoriteRepository on GORM.
type gormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new gormFavoriteRepository.
func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &gormFavoriteRepository{db: db}
}

// ListByUser returns the user's favorites, newest first.
func (r *gormFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user %d: %w", userID, err)
	}
	return favorites, nil
}

// Add stores a favorite. A duplicate user+track pair yields
// ErrAlreadyFavorite.
func (r *gormFavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND track_id = ?", favorite.UserID, favorite.TrackID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check favorite for user %d: %w", favorite.UserID, err)
	}
	if count > 0 {
		return ErrAlreadyFavorite
	}

	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorite. Removing an absent favorite is a no-op.
func (r *gormFavoriteRepository) Remove(ctx context.Context, userID int64, trackID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Delete(&model.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite for user %d: %w", userID, err)
	}
	return nil
}
