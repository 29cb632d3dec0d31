package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"AuraFM/core/jamendo"
	"AuraFM/model"
)

type MockHistory struct {
	mock.Mock
}

func (m *MockHistory) RecentByUser(ctx context.Context, userID int64, limit int) ([]model.ListeningEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ListeningEvent), args.Error(1)
}

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) Tracks(ctx context.Context, q jamendo.TrackQuery) ([]model.Track, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Track), args.Error(1)
}

func events(tagLists ...[]string) []model.ListeningEvent {
	evs := make([]model.ListeningEvent, len(tagLists))
	for i, tags := range tagLists {
		evs[i] = model.ListeningEvent{UserID: 1, TrackID: "t", MoodTags: model.TagList(tags)}
	}
	return evs
}

func someTracks(n int) []model.Track {
	tracks := make([]model.Track, n)
	for i := range tracks {
		tracks[i] = model.Track{TrackID: "jamendo_1"}
	}
	return tracks
}

func TestRecommendPersonalized(t *testing.T) {
	t.Run("top three tags by frequency", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(
			[]string{"rock", "guitar"},
			[]string{"rock", "piano"},
			[]string{"rock", "guitar", "jazz"},
		), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, jamendo.TrackQuery{
			Tags:  "rock+guitar+jazz",
			Boost: jamendo.OrderPopularityTotal,
			Limit: DefaultLimit,
		}).Return(someTracks(5), nil)

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)

		assert.Len(t, tracks, 5)
		remote.AssertExpectations(t)
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		history := new(MockHistory)
		// All four tags appear once; jazz appears twice.
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(
			[]string{"jazz", "delta"},
			[]string{"jazz", "charlie"},
			[]string{"alpha", "bravo"},
		), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.MatchedBy(func(q jamendo.TrackQuery) bool {
			return q.Tags == "jazz+alpha+bravo"
		})).Return(someTracks(1), nil)

		e := NewEngine(history, remote)
		e.Recommend(context.Background(), 1)
		remote.AssertExpectations(t)
	})

	t.Run("tags are normalized before counting", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(
			[]string{"Rock", "  rock ", "ROCK"},
			[]string{"", "  "},
		), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.MatchedBy(func(q jamendo.TrackQuery) bool {
			return q.Tags == "rock"
		})).Return(someTracks(1), nil)

		e := NewEngine(history, remote)
		e.Recommend(context.Background(), 1)
		remote.AssertExpectations(t)
	})
}

func TestRecommendColdStart(t *testing.T) {
	t.Run("no events serves trending", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, jamendo.TrackQuery{
			Order: jamendo.OrderPopularityWeek,
			Limit: DefaultLimit,
		}).Return(someTracks(10), nil)

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)

		assert.Len(t, tracks, 10)
		remote.AssertExpectations(t)
	})

	t.Run("history read failure serves trending", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(nil, errors.New("db down"))

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.MatchedBy(func(q jamendo.TrackQuery) bool {
			return q.Order == jamendo.OrderPopularityWeek
		})).Return(someTracks(2), nil)

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)
		assert.Len(t, tracks, 2)
	})
}

func TestRecommendCascade(t *testing.T) {
	t.Run("empty personalized result retries trending once", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(
			[]string{"obscuretag"},
		), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.MatchedBy(func(q jamendo.TrackQuery) bool {
			return q.Tags == "obscuretag"
		})).Return([]model.Track{}, nil).Once()
		remote.On("Tracks", mock.Anything, mock.MatchedBy(func(q jamendo.TrackQuery) bool {
			return q.Order == jamendo.OrderPopularityWeek
		})).Return(someTracks(3), nil).Once()

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)

		assert.Len(t, tracks, 3)
		remote.AssertExpectations(t)
	})
}

func TestRecommendFailuresYieldEmptyList(t *testing.T) {
	t.Run("personalized query failure", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(
			[]string{"rock"},
		), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.Anything).Return(nil, errors.New("api down"))

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)

		require.NotNil(t, tracks)
		assert.Empty(t, tracks)
		// The remote must not be retried against the local catalog or
		// any other source.
		remote.AssertNumberOfCalls(t, "Tracks", 1)
	})

	t.Run("trending query failure", func(t *testing.T) {
		history := new(MockHistory)
		history.On("RecentByUser", mock.Anything, int64(1), historyDepth).Return(events(), nil)

		remote := new(MockRemote)
		remote.On("Tracks", mock.Anything, mock.Anything).Return(nil, errors.New("api down"))

		e := NewEngine(history, remote)
		tracks := e.Recommend(context.Background(), 1)

		require.NotNil(t, tracks)
		assert.Empty(t, tracks)
	})
}
