package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/services"
	"scrobblegraph/internal/textutil"
	"scrobblegraph/internal/tsv"
	"scrobblegraph/internal/vocab"
)

// progressEvery controls how often the driver reports progress at info level.
const progressEvery = 1000

// Resolver assigns canonical URIs to entity names.
type Resolver interface {
	Resolve(ctx context.Context, name, externalID string, kind graph.Kind) (graph.URI, error)
}

// RowSource yields scrobble rows. It returns io.EOF when exhausted and a
// *tsv.MalformedRowError for rows that can be skipped.
type RowSource interface {
	Next() (tsv.Row, error)
}

// Options configures a Driver.
type Options struct {
	Resolver Resolver
	Store    *graph.Store
	// LocalNamespace prefixes scrobble identifiers.
	LocalNamespace string
	// Strict aborts on the first malformed row instead of skipping it.
	Strict bool
	Logger *slog.Logger
}

// Result summarizes one pass over the input.
type Result struct {
	RowsRead      int          `json:"rows_read"`
	RowsConverted int          `json:"rows_converted"`
	RowsSkipped   int          `json:"rows_skipped"`
	Counts        graph.Counts `json:"counts"`
}

// Driver turns rows into store records.
type Driver struct {
	resolver  Resolver
	store     *graph.Store
	namespace string
	strict    bool
	logger    *slog.Logger
}

// NewDriver validates opts and returns a Driver.
func NewDriver(opts Options) (*Driver, error) {
	if opts.Resolver == nil {
		return nil, errors.New("ingest: resolver required")
	}
	if opts.Store == nil {
		return nil, errors.New("ingest: store required")
	}
	namespace := strings.TrimSpace(opts.LocalNamespace)
	if namespace == "" {
		namespace = vocab.LocalResource
	}
	return &Driver{
		resolver:  opts.Resolver,
		store:     opts.Store,
		namespace: namespace,
		strict:    opts.Strict,
		logger:    logging.NewComponentLogger(opts.Logger, "ingest"),
	}, nil
}

// Run consumes src until io.EOF, one row at a time. Any resolution error
// aborts the run and names the failing row.
func (d *Driver) Run(ctx context.Context, src RowSource) (Result, error) {
	var result Result
	for {
		if err := ctx.Err(); err != nil {
			return d.finish(result), err
		}
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var malformed *tsv.MalformedRowError
			if !errors.As(err, &malformed) {
				return d.finish(result), err
			}
			result.RowsRead++
			if d.strict {
				return d.finish(result), err
			}
			result.RowsSkipped++
			logging.Warning{
				Event:  "row_skipped",
				Hint:   "fix the export or run with --strict to stop at the first bad row",
				Impact: "scrobble omitted from the graph",
			}.Log(logging.WithContext(services.WithRow(ctx, malformed.Ordinal), d.logger), "skipping malformed row",
				logging.Int("line", malformed.Line),
				logging.Int("columns", malformed.Columns),
				logging.Int("required_columns", tsv.RequiredColumns),
			)
			continue
		}

		result.RowsRead++
		rowCtx := services.WithRow(ctx, row.Ordinal)
		if err := d.ingestRow(rowCtx, row); err != nil {
			return d.finish(result), fmt.Errorf("row %d (line %d): %w", row.Ordinal, row.Line, err)
		}
		result.RowsConverted++
		if result.RowsConverted%progressEvery == 0 {
			logging.WithContext(ctx, d.logger).Info("conversion progress",
				logging.Int("rows_converted", result.RowsConverted),
				logging.Int("rows_skipped", result.RowsSkipped),
			)
		}
	}
	return d.finish(result), nil
}

func (d *Driver) finish(result Result) Result {
	result.Counts = d.store.Counts()
	return result
}

func (d *Driver) ingestRow(ctx context.Context, row tsv.Row) error {
	trackName := textutil.StripQuotes(row.Track)
	artistName := textutil.StripQuotes(row.Artist)
	albumName := textutil.StripQuotes(row.Album)
	albumArtistName := textutil.StripQuotes(row.AlbumArtist)
	applicationName := textutil.StripQuotes(row.Application)

	trackURI, err := d.resolver.Resolve(ctx, trackName, strings.TrimSpace(row.TrackMBID), graph.KindTrack)
	if err != nil {
		return err
	}
	artistURI, err := d.resolver.Resolve(ctx, artistName, strings.TrimSpace(row.ArtistMBID), graph.KindArtist)
	if err != nil {
		return err
	}
	albumURI, err := d.resolver.Resolve(ctx, albumName, strings.TrimSpace(row.AlbumMBID), graph.KindAlbum)
	if err != nil {
		return err
	}
	albumArtistURI, err := d.resolver.Resolve(ctx, albumArtistName, strings.TrimSpace(row.AlbumArtistMBID), graph.KindArtist)
	if err != nil {
		return err
	}
	applicationURI, err := d.resolver.Resolve(ctx, applicationName, "", graph.KindApplication)
	if err != nil {
		return err
	}

	d.store.AddScrobble(graph.Scrobble{
		ID:          graph.URI(d.namespace + strconv.Itoa(row.Ordinal)),
		Ordinal:     row.Ordinal,
		Date:        row.ISOTime,
		Track:       trackURI,
		Application: applicationURI,
	})
	d.store.UpsertApplication(applicationURI, graph.Application{Title: applicationName})
	d.store.UpsertTrack(trackURI, graph.Track{Title: trackName, Maker: artistURI})
	d.store.UpsertArtist(artistURI, graph.Artist{Name: artistName})
	album := graph.Album{Title: albumName, Maker: albumArtistURI}
	if !trackURI.IsZero() {
		album.Tracks = []graph.URI{trackURI}
	}
	d.store.UpsertAlbum(albumURI, album)
	d.store.UpsertArtist(albumArtistURI, graph.Artist{Name: albumArtistName})

	if d.logger.Enabled(ctx, slog.LevelDebug) {
		logging.WithContext(ctx, d.logger).Debug("row converted",
			logging.String("track", string(trackURI)),
			logging.String("artist", string(artistURI)),
			logging.String("album", string(albumURI)),
			logging.String("application", string(applicationURI)),
		)
	}
	return nil
}
