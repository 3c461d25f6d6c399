// Package tsv reads the tab-separated scrobble export.
//
// The first record is a header and is skipped. Data rows are numbered from 1
// in file order; that ordinal becomes the scrobble identifier, so a short row
// still consumes its number. Blank lines are ignored and do not consume one.
package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"scrobblegraph/internal/services"
)

// Column positions.
const (
	ColISOTime = iota
	ColUnixTime
	ColTrack
	ColTrackMBID
	ColArtist
	ColArtistMBID
	_
	_
	_
	_
	ColAlbum
	ColAlbumMBID
	ColAlbumArtist
	ColAlbumArtistMBID
	ColApplication
	// RequiredColumns is the minimum number of fields a data row must carry.
	RequiredColumns
)

// Row holds the fields of one scrobble export line.
type Row struct {
	Ordinal int
	Line    int

	ISOTime         string
	UnixTime        string
	Track           string
	TrackMBID       string
	Artist          string
	ArtistMBID      string
	Album           string
	AlbumMBID       string
	AlbumArtist     string
	AlbumArtistMBID string
	Application     string
}

// MalformedRowError reports a data row with too few columns. It matches
// services.ErrMalformedRow.
type MalformedRowError struct {
	Ordinal int
	Line    int
	Columns int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d (line %d): %d columns, need at least %d", e.Ordinal, e.Line, e.Columns, RequiredColumns)
}

func (e *MalformedRowError) Unwrap() error {
	return services.ErrMalformedRow
}

// Reader yields Rows from a scrobble export. Each physical line is one
// record: a field wrapped in double quotes may contain tabs and doubled
// quotes, and text after a closing quote joins the same field.
type Reader struct {
	src        *bufio.Reader
	line       int
	headerRead bool
	ordinal    int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

// Next returns the next data row. It returns io.EOF after the last row and a
// *MalformedRowError for short rows; reading may continue after the latter.
func (r *Reader) Next() (Row, error) {
	if !r.headerRead {
		r.headerRead = true
		if _, _, err := r.readRecord(); err != nil {
			if errors.Is(err, io.EOF) {
				return Row{}, io.EOF
			}
			return Row{}, fmt.Errorf("read header: %w", err)
		}
	}

	record, line, err := r.readRecord()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, services.Wrap(services.ErrValidation, "tsv", "read", fmt.Sprintf("after row %d", r.ordinal), err)
	}
	r.ordinal++

	if len(record) < RequiredColumns {
		return Row{}, &MalformedRowError{Ordinal: r.ordinal, Line: line, Columns: len(record)}
	}
	return Row{
		Ordinal:         r.ordinal,
		Line:            line,
		ISOTime:         record[ColISOTime],
		UnixTime:        record[ColUnixTime],
		Track:           record[ColTrack],
		TrackMBID:       record[ColTrackMBID],
		Artist:          record[ColArtist],
		ArtistMBID:      record[ColArtistMBID],
		Album:           record[ColAlbum],
		AlbumMBID:       record[ColAlbumMBID],
		AlbumArtist:     record[ColAlbumArtist],
		AlbumArtistMBID: record[ColAlbumArtistMBID],
		Application:     record[ColApplication],
	}, nil
}

// readRecord returns the fields of the next non-blank line and its 1-based
// line number.
func (r *Reader) readRecord() ([]string, int, error) {
	for {
		text, err := r.src.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, 0, err
		}
		if text == "" && errors.Is(err, io.EOF) {
			return nil, 0, io.EOF
		}
		r.line++
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
		if text == "" {
			if errors.Is(err, io.EOF) {
				return nil, 0, io.EOF
			}
			continue
		}
		return splitFields(text), r.line, nil
	}
}

// splitFields splits one line on tabs. A quote opens a quoted section only at
// the start of a field; inside it tabs are literal and "" is one quote. An
// unterminated quoted section runs to the end of the line.
func splitFields(line string) []string {
	var (
		fields  []string
		field   strings.Builder
		quoted  bool
		atStart = true
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			quoted = false
		case quoted:
			field.WriteByte(c)
		case c == '\t':
			fields = append(fields, field.String())
			field.Reset()
			atStart = true
			continue
		case c == '"' && atStart:
			quoted = true
		default:
			field.WriteByte(c)
		}
		atStart = false
	}
	return append(fields, field.String())
}
