package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"scrobblegraph/internal/config"
	"scrobblegraph/internal/convert"
)

type convertFlags struct {
	input          string
	output         string
	lookupEndpoint string
	offline        bool
	strict         bool
	noCache        bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a scrobble export into a Turtle document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.runConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}

			summary, err := convert.Run(cmd.Context(), cfg, convert.Options{Logger: logger})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			printConvertSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.input, "input", "", "Scrobble TSV to read (overrides paths.input)")
	cmd.Flags().StringVar(&flags.output, "output", "", "Turtle file to write (overrides paths.output)")
	cmd.Flags().StringVar(&flags.lookupEndpoint, "lookup-endpoint", "", "DBpedia Lookup KeywordSearch URL")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "Skip DBpedia Lookup and mint local URIs")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Abort on the first malformed row")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Bypass the persistent lookup cache")
	return cmd
}

// apply layers flag overrides on top of the loaded config. Flags win over
// environment overrides, so they are applied after loading and then validated.
func (f convertFlags) apply(cfg *config.Config) error {
	if input := strings.TrimSpace(f.input); input != "" {
		expanded, err := config.ExpandPath(input)
		if err != nil {
			return fmt.Errorf("resolve --input: %w", err)
		}
		cfg.Paths.Input = expanded
	}
	if output := strings.TrimSpace(f.output); output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return fmt.Errorf("resolve --output: %w", err)
		}
		cfg.Paths.Output = expanded
	}
	if endpoint := strings.TrimSpace(f.lookupEndpoint); endpoint != "" {
		cfg.Lookup.Endpoint = endpoint
	}
	if f.offline {
		cfg.Lookup.Enabled = false
	}
	if f.noCache {
		cfg.LookupCache.Enabled = false
	}
	if f.strict {
		cfg.Input.Strict = true
	}
	return cfg.Validate()
}

func printConvertSummary(cmd *cobra.Command, summary convert.Summary) {
	out := cmd.OutOrStdout()
	result := summary.Result
	rows := [][]string{
		{"Input", summary.Input},
		{"Output", summary.Output},
		{"Lookup", yesNo(summary.Lookup)},
		{"Rows read", strconv.Itoa(result.RowsRead)},
		{"Rows converted", strconv.Itoa(result.RowsConverted)},
		{"Rows skipped", strconv.Itoa(result.RowsSkipped)},
		{"Scrobbles", strconv.Itoa(result.Counts.Scrobbles)},
		{"Applications", strconv.Itoa(result.Counts.Applications)},
		{"Tracks", strconv.Itoa(result.Counts.Tracks)},
		{"Artists", strconv.Itoa(result.Counts.Artists)},
		{"Albums", strconv.Itoa(result.Counts.Albums)},
		{"MusicBrainz ids", strconv.Itoa(summary.Resolver.ExternalIDs)},
		{"Lookups", strconv.Itoa(summary.Resolver.DiscoveryCalls)},
		{"Lookup hits", strconv.Itoa(summary.Resolver.DiscoveryHits)},
		{"Lookup cache hits", strconv.Itoa(summary.CacheHits)},
		{"Local URIs", strconv.Itoa(summary.Resolver.LocalURIs)},
		{"Slug collisions", strconv.Itoa(summary.Resolver.SlugCollisions)},
		{"Bytes written", strconv.FormatInt(summary.BytesWritten, 10)},
		{"Duration", summary.Duration.Round(time.Millisecond).String()},
	}
	printTable(out, []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
