package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrobblegraph/internal/lookupcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the lookup cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func openLookupCache(cmdCtx context.Context, ctx *commandContext) (*lookupcache.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(cfg.LookupCache.Path)
	if path == "" {
		return nil, fmt.Errorf("lookup_cache.path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return lookupcache.Open(cmdCtx, path)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached lookup answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLookupCache(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cached lookups: none")
				return nil
			}
			const stampLayout = "2006-01-02 15:04"
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				uri := entry.URI
				if uri == "" {
					uri = "(no match)"
				}
				rows = append(rows, []string{
					entry.Query,
					strings.Join(entry.Classes, ","),
					uri,
					entry.CachedAt.Local().Format(stampLayout),
				})
			}
			printTable(out, []string{"Query", "Classes", "URI", "Cached"}, rows, nil)
			return nil
		},
	}
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show lookup cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLookupCache(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:    %s\n", store.Path())
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			fmt.Fprintf(out, "Hits:    %d\n", stats.Hits)
			fmt.Fprintf(out, "Misses:  %d\n", stats.Misses)
			if !stats.Oldest.IsZero() {
				fmt.Fprintf(out, "Oldest:  %s\n", stats.Oldest.Local().Format("2006-01-02 15:04"))
				fmt.Fprintf(out, "Newest:  %s\n", stats.Newest.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached lookup answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openLookupCache(cmd.Context(), ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), map[string]int64{"removed": removed})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s cached lookups\n", strconv.FormatInt(removed, 10))
			return nil
		},
	}
}
