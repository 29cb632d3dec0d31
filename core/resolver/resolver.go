package resolver

import (
	"context"

	"AuraFM/core/catalog"
	"AuraFM/logger"
	"AuraFM/model"
)

// Resolution is the outcome of resolving a track id: a playable URL plus the
// descriptive tags recorded into the listening history.
type Resolution struct {
	PreviewURL string
	Tags       []string
}

// RemoteLookup is the remote catalog lookup used by the jamendo tier.
type RemoteLookup interface {
	TrackByID(ctx context.Context, id string) (*model.JamendoTrack, error)
}

// strategy is one resolution tier. It reports whether it produced a result;
// a false return means "try the next tier", never an error.
type strategy interface {
	Name() string
	Resolve(ctx context.Context, id ParsedID) (Resolution, bool)
}

// Resolver turns an opaque track id into a playable URL by trying an
// ordered list of tiers: local catalog, placeholder index, remote catalog,
// synthetic fallback. It never fails outward: the last tier always yields
// the configured fallback URL.
type Resolver struct {
	strategies  []strategy
	fallbackURL string
}

// New builds a resolver over the local catalog and the remote lookup.
// Adding a provider later means appending a strategy here.
func New(local *catalog.Catalog, remote RemoteLookup, fallbackURL string) *Resolver {
	return &Resolver{
		strategies: []strategy{
			&localStrategy{catalog: local},
			&placeholderStrategy{catalog: local},
			&remoteStrategy{remote: remote},
			&demoStrategy{fallbackURL: fallbackURL},
		},
		fallbackURL: fallbackURL,
	}
}

// Resolve determines the playable URL and tags for a track id. It always
// returns a usable resolution.
func (r *Resolver) Resolve(ctx context.Context, trackID string) Resolution {
	id := ParseID(trackID)

	for _, s := range r.strategies {
		if res, ok := s.Resolve(ctx, id); ok {
			logger.Debug("Track resolved",
				logger.String("trackId", trackID),
				logger.String("tier", s.Name()),
				logger.String("provenance", id.Provenance.String()),
			)
			return res
		}
	}

	logger.Info("No resolution tier matched, using ultimate fallback",
		logger.String("trackId", trackID),
	)
	return Resolution{PreviewURL: r.fallbackURL, Tags: []string{"unknown"}}
}

// localStrategy matches the id against the bundled catalog. Tags are the
// single genre of the matched entry.
type localStrategy struct {
	catalog *catalog.Catalog
}

func (s *localStrategy) Name() string { return "local" }

func (s *localStrategy) Resolve(_ context.Context, id ParsedID) (Resolution, bool) {
	track, ok := s.catalog.ByID(id.Raw)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{PreviewURL: track.PreviewURL, Tags: []string{track.Genre}}, true
}

// placeholderStrategy resolves "generated_<n>"/"browse_<n>" ids by indexing
// into the local catalog. An out-of-range index is a silent skip.
type placeholderStrategy struct {
	catalog *catalog.Catalog
}

func (s *placeholderStrategy) Name() string { return "placeholder" }

func (s *placeholderStrategy) Resolve(_ context.Context, id ParsedID) (Resolution, bool) {
	if id.Provenance != ProvenancePlaceholder || id.Index < 0 {
		return Resolution{}, false
	}
	track, ok := s.catalog.ByIndex(id.Index)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{PreviewURL: track.PreviewURL, Tags: []string{track.Genre}}, true
}

// remoteStrategy looks the id up in the remote catalog with extended
// metadata. Any request failure is logged and skipped, not surfaced.
type remoteStrategy struct {
	remote RemoteLookup
}

func (s *remoteStrategy) Name() string { return "jamendo" }

func (s *remoteStrategy) Resolve(ctx context.Context, id ParsedID) (Resolution, bool) {
	if id.Provenance != ProvenanceRemote || s.remote == nil {
		return Resolution{}, false
	}

	track, err := s.remote.TrackByID(ctx, id.RemoteID())
	if err != nil {
		logger.Warn("Remote track lookup failed",
			logger.String("trackId", id.Raw),
			logger.ErrorField(err),
		)
		return Resolution{}, false
	}
	if track.Audio == "" {
		return Resolution{}, false
	}

	return Resolution{PreviewURL: track.Audio, Tags: track.AllTags()}, true
}

// demoStrategy serves "demo_"/"fallback_" ids with the known-good fallback
// URL.
type demoStrategy struct {
	fallbackURL string
}

func (s *demoStrategy) Name() string { return "demo" }

func (s *demoStrategy) Resolve(_ context.Context, id ParsedID) (Resolution, bool) {
	if id.Provenance != ProvenanceDemo {
		return Resolution{}, false
	}
	return Resolution{PreviewURL: s.fallbackURL, Tags: []string{"demo"}}, true
}
