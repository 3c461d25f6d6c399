package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ScrobbleHeader is the header line of a scrobble export.
const ScrobbleHeader = "iso_time\tunix_time\ttrack\ttrack_mbid\tartist\tartist_mbid\tuncorrected_track\tuncorrected_track_mbid\tuncorrected_artist\tuncorrected_artist_mbid\talbum\talbum_mbid\talbum_artist\talbum_artist_mbid\tapplication"

// Scrobble describes the columns of one export row that the converter reads.
type Scrobble struct {
	ISOTime, UnixTime  string
	Track, TrackMBID   string
	Artist, ArtistMBID string
	Album, AlbumMBID   string
	AlbumArtist        string
	AlbumArtistMBID    string
	Application        string
}

// Line renders s as a tab separated row without the trailing newline.
func (s Scrobble) Line() string {
	return strings.Join([]string{
		s.ISOTime, s.UnixTime, s.Track, s.TrackMBID, s.Artist, s.ArtistMBID,
		"", "", "", "",
		s.Album, s.AlbumMBID, s.AlbumArtist, s.AlbumArtistMBID, s.Application,
	}, "\t")
}

// WriteScrobbles writes a header and rows to path, creating parent
// directories. Extra raw lines are appended verbatim.
func WriteScrobbles(t testing.TB, path string, rows []Scrobble, raw ...string) {
	t.Helper()

	var b strings.Builder
	b.WriteString(ScrobbleHeader)
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(row.Line())
		b.WriteByte('\n')
	}
	for _, line := range raw {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	WriteFile(t, path, b.String())
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
