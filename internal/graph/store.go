package graph

import (
	"slices"
	"strings"

	"scrobblegraph/internal/textutil"
)

// Entry pairs an entity URI with its record.
type Entry[T any] struct {
	URI    URI
	Record T
}

// Counts summarizes store contents.
type Counts struct {
	Scrobbles    int `json:"scrobbles"`
	Applications int `json:"applications"`
	Tracks       int `json:"tracks"`
	Artists      int `json:"artists"`
	Albums       int `json:"albums"`
}

// Store coalesces entity observations for one conversion run. It is not safe
// for concurrent use.
type Store struct {
	scrobbles    []Scrobble
	applications map[URI]Application
	tracks       map[URI]Track
	artists      map[URI]Artist
	albums       map[URI]*Album
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		applications: make(map[URI]Application),
		tracks:       make(map[URI]Track),
		artists:      make(map[URI]Artist),
		albums:       make(map[URI]*Album),
	}
}

// AddScrobble appends an event in row order.
func (s *Store) AddScrobble(scrobble Scrobble) {
	s.scrobbles = append(s.scrobbles, scrobble)
}

// UpsertApplication inserts or overwrites an application. Empty uri is a no-op.
func (s *Store) UpsertApplication(uri URI, record Application) {
	if uri.IsZero() {
		return
	}
	s.applications[uri] = record
}

// UpsertTrack inserts or overwrites a track. Empty uri is a no-op.
func (s *Store) UpsertTrack(uri URI, record Track) {
	if uri.IsZero() {
		return
	}
	s.tracks[uri] = record
}

// UpsertArtist inserts or overwrites an artist. Empty uri is a no-op.
func (s *Store) UpsertArtist(uri URI, record Artist) {
	if uri.IsZero() {
		return
	}
	s.artists[uri] = record
}

// UpsertAlbum inserts an album or merges into an existing one: title and maker
// are overwritten with the incoming values, tracks are unioned.
func (s *Store) UpsertAlbum(uri URI, record Album) {
	if uri.IsZero() {
		return
	}
	existing, ok := s.albums[uri]
	if !ok {
		existing = &Album{}
		s.albums[uri] = existing
	}
	existing.Title = record.Title
	existing.Maker = record.Maker
	for _, track := range record.Tracks {
		existing.addTrack(track)
	}
}

// AddAlbumTrack adds track to an already stored album. It reports false when
// the album is unknown or either URI is empty.
func (s *Store) AddAlbumTrack(album, track URI) bool {
	if album.IsZero() || track.IsZero() {
		return false
	}
	existing, ok := s.albums[album]
	if !ok {
		return false
	}
	existing.addTrack(track)
	return true
}

// Album returns a copy of the album stored at uri.
func (s *Store) Album(uri URI) (Album, bool) {
	existing, ok := s.albums[uri]
	if !ok {
		return Album{}, false
	}
	return cloneAlbum(*existing), true
}

// Track returns the track stored at uri.
func (s *Store) Track(uri URI) (Track, bool) {
	record, ok := s.tracks[uri]
	return record, ok
}

// Artist returns the artist stored at uri.
func (s *Store) Artist(uri URI) (Artist, bool) {
	record, ok := s.artists[uri]
	return record, ok
}

// Application returns the application stored at uri.
func (s *Store) Application(uri URI) (Application, bool) {
	record, ok := s.applications[uri]
	return record, ok
}

// Scrobbles returns events in insertion order.
func (s *Store) Scrobbles() []Scrobble {
	return slices.Clone(s.scrobbles)
}

// Applications returns applications ordered case-insensitively by URI, ties
// broken by exact text.
func (s *Store) Applications() []Entry[Application] {
	out := entries(s.applications)
	slices.SortFunc(out, func(a, b Entry[Application]) int {
		return textutil.CompareFolded(string(a.URI), string(b.URI))
	})
	return out
}

// Tracks returns tracks ordered by URI.
func (s *Store) Tracks() []Entry[Track] {
	return sortedEntries(s.tracks)
}

// Artists returns artists ordered by URI.
func (s *Store) Artists() []Entry[Artist] {
	return sortedEntries(s.artists)
}

// Albums returns albums ordered by URI.
func (s *Store) Albums() []Entry[Album] {
	out := make([]Entry[Album], 0, len(s.albums))
	for uri, record := range s.albums {
		out = append(out, Entry[Album]{URI: uri, Record: cloneAlbum(*record)})
	}
	slices.SortFunc(out, func(a, b Entry[Album]) int {
		return strings.Compare(string(a.URI), string(b.URI))
	})
	return out
}

// Counts reports how many records of each kind are stored.
func (s *Store) Counts() Counts {
	return Counts{
		Scrobbles:    len(s.scrobbles),
		Applications: len(s.applications),
		Tracks:       len(s.tracks),
		Artists:      len(s.artists),
		Albums:       len(s.albums),
	}
}

func entries[T any](m map[URI]T) []Entry[T] {
	out := make([]Entry[T], 0, len(m))
	for uri, record := range m {
		out = append(out, Entry[T]{URI: uri, Record: record})
	}
	return out
}

func sortedEntries[T any](m map[URI]T) []Entry[T] {
	out := entries(m)
	slices.SortFunc(out, func(a, b Entry[T]) int {
		return strings.Compare(string(a.URI), string(b.URI))
	})
	return out
}

func cloneAlbum(a Album) Album {
	a.Tracks = slices.Clone(a.Tracks)
	return a
}
