package graph

import (
	"slices"
	"strings"
)

// URI is a full IRI without angle brackets. The zero value means "no entity".
type URI string

// IsZero reports whether u is empty.
func (u URI) IsZero() bool { return u == "" }

// Under reports whether u lies inside namespace.
func (u URI) Under(namespace string) bool {
	return namespace != "" && strings.HasPrefix(string(u), namespace)
}

// Scrobble is one playback event. Scrobbles are never merged.
type Scrobble struct {
	ID          URI
	Ordinal     int
	Date        string
	Track       URI
	Application URI
}

// Application is the software that logged a scrobble.
type Application struct {
	Title string
}

// Track is a recording.
type Track struct {
	Title string
	Maker URI
}

// Artist is a performer, used both as track maker and album maker.
type Artist struct {
	Name string
}

// Album is a release. Tracks is kept sorted ascending without duplicates.
type Album struct {
	Title  string
	Maker  URI
	Tracks []URI
}

// addTrack inserts track into the sorted set. Reports whether it was added.
func (a *Album) addTrack(track URI) bool {
	if track.IsZero() {
		return false
	}
	idx, found := slices.BinarySearch(a.Tracks, track)
	if found {
		return false
	}
	a.Tracks = slices.Insert(a.Tracks, idx, track)
	return true
}

// HasTrack reports whether track belongs to the album.
func (a Album) HasTrack(track URI) bool {
	_, found := slices.BinarySearch(a.Tracks, track)
	return found
}
