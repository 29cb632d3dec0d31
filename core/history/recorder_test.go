package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AuraFM/model"
)

// fakeStore keeps events in memory and can be told to fail.
type fakeStore struct {
	events    []model.ListeningEvent
	createErr error
	latestErr error
}

func (s *fakeStore) Create(_ context.Context, event *model.ListeningEvent) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeStore) LatestByUserAndTrack(_ context.Context, userID int64, trackID string) (*model.ListeningEvent, error) {
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].UserID == userID && s.events[i].TrackID == trackID {
			ev := s.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func TestRecordFirstEvent(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil)

	r.Record(context.Background(), 1, "music_1", []string{"Electronic"})

	require.Len(t, store.events, 1)
	assert.Equal(t, int64(1), store.events[0].UserID)
	assert.Equal(t, "music_1", store.events[0].TrackID)
	assert.Equal(t, model.TagList{"Electronic"}, store.events[0].MoodTags)
	assert.WithinDuration(t, time.Now(), store.events[0].ListenedAt, time.Second)
}

func TestRecordDebounce(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil)

	r.Record(context.Background(), 1, "music_1", nil)
	r.Record(context.Background(), 1, "music_1", nil)

	assert.Len(t, store.events, 1, "replay inside the window must be ignored")

	// A different track or user is not debounced.
	r.Record(context.Background(), 1, "music_2", nil)
	r.Record(context.Background(), 2, "music_1", nil)
	assert.Len(t, store.events, 3)
}

func TestRecordAfterWindow(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil)
	r.SetWindow(10 * time.Millisecond)

	r.Record(context.Background(), 1, "music_1", nil)
	time.Sleep(20 * time.Millisecond)
	r.Record(context.Background(), 1, "music_1", nil)

	assert.Len(t, store.events, 2)
}

func TestRecordSwallowsFailures(t *testing.T) {
	t.Run("create failure", func(t *testing.T) {
		store := &fakeStore{createErr: errors.New("db down")}
		r := NewRecorder(store, nil)

		assert.NotPanics(t, func() {
			r.Record(context.Background(), 1, "music_1", nil)
		})
		assert.Empty(t, store.events)
	})

	t.Run("debounce check failure skips the event", func(t *testing.T) {
		store := &fakeStore{latestErr: errors.New("db down")}
		r := NewRecorder(store, nil)

		r.Record(context.Background(), 1, "music_1", nil)
		assert.Empty(t, store.events)
	})
}
