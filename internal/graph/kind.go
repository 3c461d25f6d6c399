package graph

import (
	"fmt"
	"strings"

	"scrobblegraph/internal/vocab"
)

// Kind identifies the entity family a name belongs to. It selects the external
// namespace for supplied identifiers and the discovery class list.
type Kind int

const (
	KindTrack Kind = iota + 1
	KindArtist
	KindAlbum
	KindApplication
)

// Kinds lists every entity kind in serializer block order after scrobbles.
var Kinds = []Kind{KindApplication, KindTrack, KindArtist, KindAlbum}

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindApplication:
		return "application"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a lowercase kind name back to its Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "track":
		return KindTrack, nil
	case "artist":
		return KindArtist, nil
	case "album":
		return KindAlbum, nil
	case "application", "app":
		return KindApplication, nil
	default:
		return 0, fmt.Errorf("unknown entity kind %q", value)
	}
}

// ExternalNamespace returns the MusicBrainz namespace for supplied identifiers
// of this kind. Applications have none.
func (k Kind) ExternalNamespace() string {
	switch k {
	case KindTrack:
		return vocab.MusicBrainzTrack
	case KindArtist:
		return vocab.MusicBrainzActor
	case KindAlbum:
		return vocab.MusicBrainzAlbum
	default:
		return ""
	}
}

// DiscoveryClasses returns the ordered DBpedia classes queried for this kind.
func (k Kind) DiscoveryClasses() []string {
	var classes []string
	switch k {
	case KindTrack:
		classes = vocab.TrackClasses
	case KindArtist:
		classes = vocab.ArtistClasses
	case KindAlbum:
		classes = vocab.AlbumClasses
	case KindApplication:
		classes = vocab.ApplicationClasses
	}
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}
