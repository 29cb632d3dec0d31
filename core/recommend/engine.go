package recommend

import (
	"context"
	"sort"
	"strings"

	"AuraFM/core/jamendo"
	"AuraFM/logger"
	"AuraFM/model"
)

const (
	// historyDepth is how many recent events feed the tag profile.
	historyDepth = 20
	// profileTags is how many top tags form the remote tag filter.
	profileTags = 3
	// DefaultLimit caps the recommendation list size.
	DefaultLimit = 10
)

// HistorySource supplies a user's recent listening events.
type HistorySource interface {
	RecentByUser(ctx context.Context, userID int64, limit int) ([]model.ListeningEvent, error)
}

// CatalogQuerier runs recommendation queries against the remote catalog.
type CatalogQuerier interface {
	Tracks(ctx context.Context, q jamendo.TrackQuery) ([]model.Track, error)
}

// Engine produces track recommendations from tag frequencies in the user's
// recent history. The remote catalog is the only track source here: when it
// fails, the recommendation list is empty rather than filled from the local
// catalog.
type Engine struct {
	history HistorySource
	remote  CatalogQuerier
	limit   int
}

// NewEngine creates a recommendation engine.
func NewEngine(history HistorySource, remote CatalogQuerier) *Engine {
	return &Engine{history: history, remote: remote, limit: DefaultLimit}
}

// Recommend returns up to the configured limit of tracks for the user. A
// user with no usable history gets the weekly trending list. Failures
// degrade to an empty list.
func (e *Engine) Recommend(ctx context.Context, userID int64) []model.Track {
	tags := e.topTags(ctx, userID)
	if len(tags) == 0 {
		logger.Debug("No tag profile, serving trending",
			logger.Int64("userId", userID),
		)
		return e.trending(ctx)
	}

	tracks, err := e.remote.Tracks(ctx, jamendo.TrackQuery{
		Tags:  strings.Join(tags, "+"),
		Boost: jamendo.OrderPopularityTotal,
		Limit: e.limit,
	})
	if err != nil {
		logger.Warn("Personalized recommendation query failed",
			logger.Int64("userId", userID),
			logger.Strings("tags", tags),
			logger.ErrorField(err),
		)
		return []model.Track{}
	}
	if len(tracks) == 0 {
		logger.Debug("Tag profile matched nothing, serving trending",
			logger.Int64("userId", userID),
			logger.Strings("tags", tags),
		)
		return e.trending(ctx)
	}
	return tracks
}

// trending returns the weekly popularity list, or an empty list on failure.
func (e *Engine) trending(ctx context.Context) []model.Track {
	tracks, err := e.remote.Tracks(ctx, jamendo.TrackQuery{
		Order: jamendo.OrderPopularityWeek,
		Limit: e.limit,
	})
	if err != nil {
		logger.Warn("Trending recommendation query failed", logger.ErrorField(err))
		return []model.Track{}
	}
	return tracks
}

// topTags builds the user's tag profile: the most frequent normalized tags
// across the recent events, ties broken alphabetically so the profile is
// stable for identical histories.
func (e *Engine) topTags(ctx context.Context, userID int64) []string {
	events, err := e.history.RecentByUser(ctx, userID, historyDepth)
	if err != nil {
		logger.Warn("Failed to load listening history",
			logger.Int64("userId", userID),
			logger.ErrorField(err),
		)
		return nil
	}

	freq := make(map[string]int)
	for _, ev := range events {
		for _, tag := range ev.MoodTags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			freq[tag]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	tags := make([]string, 0, len(freq))
	for tag := range freq {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if freq[tags[i]] != freq[tags[j]] {
			return freq[tags[i]] > freq[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if len(tags) > profileTags {
		tags = tags[:profileTags]
	}
	return tags
}
