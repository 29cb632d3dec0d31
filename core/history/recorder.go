package history

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"AuraFM/logger"
	"AuraFM/model"
)

// DebounceWindow is the minimum gap between two recorded events for the
// same user and track. Replays and seeks inside the window are ignored.
const DebounceWindow = 60 * time.Second

// Store persists listening events. Implemented by the history repository.
type Store interface {
	Create(ctx context.Context, event *model.ListeningEvent) error
	LatestByUserAndTrack(ctx context.Context, userID int64, trackID string) (*model.ListeningEvent, error)
}

// Recorder appends listening events to a user's history with per-track
// debouncing. The debounce gate is an atomic Redis SET NX when Redis is
// available, and a repository read otherwise. Recording is best-effort:
// failures are logged and never surfaced to the playback path.
type Recorder struct {
	store  Store
	rdb    *redis.Client
	window time.Duration
}

// NewRecorder creates a recorder over the given store. rdb may be nil, in
// which case debouncing falls back to the repository read.
func NewRecorder(store Store, rdb *redis.Client) *Recorder {
	return &Recorder{store: store, rdb: rdb, window: DebounceWindow}
}

// SetWindow overrides the debounce window. Used by tests.
func (r *Recorder) SetWindow(window time.Duration) {
	r.window = window
}

// Record appends one listening event unless an event for the same user and
// track was recorded inside the debounce window. It never returns an error.
func (r *Recorder) Record(ctx context.Context, userID int64, trackID string, tags []string) {
	ok, err := r.acquire(ctx, userID, trackID)
	if err != nil {
		logger.Warn("History debounce check failed, skipping event",
			logger.Int64("userId", userID),
			logger.String("trackId", trackID),
			logger.ErrorField(err),
		)
		return
	}
	if !ok {
		logger.Debug("Listening event debounced",
			logger.Int64("userId", userID),
			logger.String("trackId", trackID),
		)
		return
	}

	event := &model.ListeningEvent{
		UserID:     userID,
		TrackID:    trackID,
		MoodTags:   model.TagList(tags),
		ListenedAt: time.Now(),
	}
	if err := r.store.Create(ctx, event); err != nil {
		logger.Warn("Failed to record listening event",
			logger.Int64("userId", userID),
			logger.String("trackId", trackID),
			logger.ErrorField(err),
		)
		return
	}

	logger.Debug("Listening event recorded",
		logger.Int64("userId", userID),
		logger.String("trackId", trackID),
		logger.Strings("tags", tags),
	)
}

// acquire reports whether a new event may be written for the user+track
// pair. The Redis path sets the gate and checks it in one round trip; if it
// errors the repository read decides instead.
func (r *Recorder) acquire(ctx context.Context, userID int64, trackID string) (bool, error) {
	if r.rdb != nil {
		key := fmt.Sprintf("listen:%d:%s", userID, trackID)
		ok, err := r.rdb.SetNX(ctx, key, 1, r.window).Result()
		if err == nil {
			return ok, nil
		}
		logger.Warn("Redis debounce unavailable, falling back to repository",
			logger.ErrorField(err),
		)
	}

	last, err := r.store.LatestByUserAndTrack(ctx, userID, trackID)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return time.Since(last.ListenedAt) >= r.window, nil
}
