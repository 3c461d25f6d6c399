package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"scrobblegraph/internal/config"
	"scrobblegraph/internal/fileutil"
	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/ingest"
	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/resolve"
	"scrobblegraph/internal/services"
	"scrobblegraph/internal/tsv"
	"scrobblegraph/internal/turtle"
)

// ErrOutputLocked reports that another conversion holds the destination lock.
var ErrOutputLocked = errors.New("output locked by another conversion")

// Options configures process-level collaborators for Run.
type Options struct {
	Logger *slog.Logger
	// HTTPClient overrides the lookup HTTP client.
	HTTPClient *http.Client
}

// Summary describes a finished run.
type Summary struct {
	RunID        string        `json:"run_id"`
	Input        string        `json:"input"`
	Output       string        `json:"output"`
	Lookup       bool          `json:"lookup"`
	Result       ingest.Result `json:"result"`
	Resolver     resolve.Stats `json:"resolver"`
	CacheHits    int           `json:"cache_hits"`
	BytesWritten int64         `json:"bytes_written"`
	Duration     time.Duration `json:"duration"`
}

// Run converts cfg.Paths.Input into cfg.Paths.Output. The destination is only
// replaced when every row was processed and the document was fully written.
func Run(ctx context.Context, cfg *config.Config, opts Options) (Summary, error) {
	if cfg == nil {
		return Summary{}, fmt.Errorf("config is required")
	}
	start := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.NewComponentLogger(opts.Logger, "convert")

	summary := Summary{
		RunID:  runID,
		Input:  cfg.Paths.Input,
		Output: cfg.Paths.Output,
		Lookup: cfg.Lookup.Enabled,
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return summary, services.Wrap(services.ErrOutput, "convert", "prepare directories", "", err)
	}

	lockPath := cfg.Paths.Output + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return summary, services.Wrap(services.ErrOutput, "convert", "acquire lock", lockPath, err)
	}
	if !ok {
		return summary, services.Wrap(services.ErrOutput, "convert", "acquire lock", lockPath, ErrOutputLocked)
	}
	defer func() {
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove output lock file", logging.String("lock", lockPath), logging.Error(err))
		}
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release output lock", logging.String("lock", lockPath), logging.Error(err))
		}
	}()

	input, err := os.Open(cfg.Paths.Input)
	if err != nil {
		return summary, services.Wrap(services.ErrValidation, "convert", "open input", cfg.Paths.Input, err)
	}
	defer input.Close()

	discovery, err := OpenDiscovery(ctx, cfg, opts.HTTPClient, opts.Logger)
	if err != nil {
		return summary, err
	}
	defer func() {
		if err := discovery.Close(); err != nil {
			logger.Warn("failed to close lookup cache", logging.Error(err))
		}
	}()

	logging.WithContext(ctx, logger).Info("conversion started",
		logging.String("input", cfg.Paths.Input),
		logging.String("output", cfg.Paths.Output),
		logging.Bool("lookup", cfg.Lookup.Enabled),
		logging.Bool("lookup_cache", cfg.Lookup.Enabled && cfg.LookupCache.Enabled),
	)

	resolver := resolve.New(resolve.Options{
		LocalNamespace:  cfg.Graph.LocalNamespace,
		Discoverer:      discovery.Discoverer,
		FallbackOnError: cfg.FallbackOnLookupError(),
		Logger:          opts.Logger,
	})
	store := graph.NewStore()
	driver, err := ingest.NewDriver(ingest.Options{
		Resolver:       resolver,
		Store:          store,
		LocalNamespace: cfg.Graph.LocalNamespace,
		Strict:         cfg.Input.Strict,
		Logger:         opts.Logger,
	})
	if err != nil {
		return summary, err
	}

	result, runErr := driver.Run(ctx, tsv.NewReader(bufio.NewReader(input)))
	summary.Result = result
	summary.Resolver = resolver.Stats()
	summary.CacheHits = discovery.CacheHits()
	if runErr != nil {
		summary.Duration = time.Since(start)
		return summary, runErr
	}

	writer := turtle.NewWriter(store, cfg.Graph.LocalNamespace)
	err = fileutil.WriteFileAtomic(cfg.Paths.Output, 0o644, func(w io.Writer) error {
		n, err := writer.WriteTo(w)
		summary.BytesWritten = n
		return err
	})
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, services.Wrap(services.ErrOutput, "convert", "write output", cfg.Paths.Output, err)
	}

	logging.WithContext(ctx, logger).Info("conversion complete",
		logging.Int("rows_converted", result.RowsConverted),
		logging.Int("rows_skipped", result.RowsSkipped),
		logging.Int("tracks", result.Counts.Tracks),
		logging.Int("artists", result.Counts.Artists),
		logging.Int("albums", result.Counts.Albums),
		logging.Int("applications", result.Counts.Applications),
		logging.Int("discovery_calls", summary.Resolver.DiscoveryCalls),
		logging.Int("cache_hits", summary.CacheHits),
		logging.Int64("bytes", summary.BytesWritten),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}
