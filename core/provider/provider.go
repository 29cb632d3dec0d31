package provider

import (
	"context"
	"strings"

	"AuraFM/core/catalog"
	"AuraFM/core/jamendo"
	"AuraFM/logger"
	"AuraFM/model"
)

// PageSize is the fixed page size of search and browse results.
const PageSize = 20

// RemoteCatalog is the remote side of the adapter, implemented by the
// Jamendo client.
type RemoteCatalog interface {
	Tracks(ctx context.Context, q jamendo.TrackQuery) ([]model.Track, error)
}

// Adapter serves search and browse over the remote catalog, transparently
// falling back to the bundled local catalog when the remote call fails or
// returns nothing. Callers cannot tell the origin apart except through the
// trackId prefix.
type Adapter struct {
	remote RemoteCatalog
	local  *catalog.Catalog
}

// NewAdapter creates a catalog provider adapter.
func NewAdapter(remote RemoteCatalog, local *catalog.Catalog) *Adapter {
	return &Adapter{remote: remote, local: local}
}

// Search returns one page of tracks matching the free-text term. Empty or
// whitespace-only terms browse the full list instead.
func (a *Adapter) Search(ctx context.Context, term string, page int) []model.Track {
	term = strings.TrimSpace(term)
	offset := pageOffset(page)

	tracks, err := a.remote.Tracks(ctx, jamendo.TrackQuery{
		Search: term,
		Order:  jamendo.OrderPopularityTotal,
		Limit:  PageSize,
		Offset: offset,
	})
	if err != nil {
		logger.Warn("Remote search failed, falling back to local catalog",
			logger.String("term", term),
			logger.Int("page", page),
			logger.ErrorField(err),
		)
	} else if len(tracks) > 0 {
		return tracks
	}

	return a.local.Search(term, offset, PageSize)
}

// Browse returns one page of the catalog ordered by total popularity, or the
// plain local list when the remote catalog is unavailable.
func (a *Adapter) Browse(ctx context.Context, page int) []model.Track {
	offset := pageOffset(page)

	tracks, err := a.remote.Tracks(ctx, jamendo.TrackQuery{
		Order:  jamendo.OrderPopularityTotal,
		Limit:  PageSize,
		Offset: offset,
	})
	if err != nil {
		logger.Warn("Remote browse failed, falling back to local catalog",
			logger.Int("page", page),
			logger.ErrorField(err),
		)
	} else if len(tracks) > 0 {
		return tracks
	}

	return a.local.Page(offset, PageSize)
}

func pageOffset(page int) int {
	if page < 0 {
		page = 0
	}
	return page * PageSize
}
