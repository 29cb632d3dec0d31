package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

// Provenance classifies a track id by its prefix. The classification is
// derived once per request and drives the ordered resolution tiers.
type Provenance int

const (
	// ProvenanceBare is an unprefixed id, a local catalog candidate.
	ProvenanceBare Provenance = iota
	// ProvenancePlaceholder is a "generated_<n>" or "browse_<n>" slot
	// indexing into the local catalog.
	ProvenancePlaceholder
	// ProvenanceRemote is a "jamendo_<id>" remote catalog reference.
	ProvenanceRemote
	// ProvenanceDemo is a "demo_" or "fallback_" synthetic id.
	ProvenanceDemo
)

// String returns the provenance name for logging.
func (p Provenance) String() string {
	switch p {
	case ProvenancePlaceholder:
		return "placeholder"
	case ProvenanceRemote:
		return "remote"
	case ProvenanceDemo:
		return "demo"
	default:
		return "bare"
	}
}

var placeholderIndex = regexp.MustCompile(`(\d+)$`)

// ParsedID is a track id with its provenance derived once. For placeholder
// ids, Index holds the trailing integer.
type ParsedID struct {
	Raw        string
	Provenance Provenance
	Index      int
}

// ParseID classifies a raw track id.
func ParseID(raw string) ParsedID {
	id := ParsedID{Raw: raw, Provenance: ProvenanceBare, Index: -1}

	switch {
	case strings.HasPrefix(raw, "jamendo_"):
		id.Provenance = ProvenanceRemote
	case strings.HasPrefix(raw, "demo_"), strings.HasPrefix(raw, "fallback_"):
		id.Provenance = ProvenanceDemo
	case strings.HasPrefix(raw, "generated_"), strings.HasPrefix(raw, "browse_"):
		id.Provenance = ProvenancePlaceholder
		if m := placeholderIndex.FindStringSubmatch(raw); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				id.Index = n
			}
		}
	}

	return id
}

// RemoteID strips the "jamendo_" prefix from a remote track id.
func (id ParsedID) RemoteID() string {
	return strings.TrimPrefix(id.Raw, "jamendo_")
}
