package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"AuraFM/model"
)

// HistoryRepository defines the interface for listening history operations.
type HistoryRepository interface {
	Create(ctx context.Context, event *model.ListeningEvent) error
	LatestByUserAndTrack(ctx context.Context, userID int64, trackID string) (*model.ListeningEvent, error)
	RecentByUser(ctx context.Context, userID int64, limit int) ([]model.ListeningEvent, error)
}

// gormHistoryRepository implements HistoryRepository on GORM.
type gormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new gormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) HistoryRepository {
	return &gormHistoryRepository{db: db}
}

// Create appends one listening event.
func (r *gormHistoryRepository) Create(ctx context.Context, event *model.ListeningEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create listening event: %w", err)
	}
	return nil
}

// LatestByUserAndTrack returns the most recent event for a user and track,
// or nil when none exists.
func (r *gormHistoryRepository) LatestByUserAndTrack(ctx context.Context, userID int64, trackID string) (*model.ListeningEvent, error) {
	var event model.ListeningEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND track_id = ?", userID, trackID).
		Order("listened_at DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest event for user %d track %s: %w", userID, trackID, err)
	}
	return &event, nil
}

// RecentByUser returns the user's newest events, most recent first.
func (r *gormHistoryRepository) RecentByUser(ctx context.Context, userID int64, limit int) ([]model.ListeningEvent, error) {
	var events []model.ListeningEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("listened_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events for user %d: %w", userID, err)
	}
	return events, nil
}
