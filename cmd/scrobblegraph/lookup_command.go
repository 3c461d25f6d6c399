package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scrobblegraph/internal/convert"
	"scrobblegraph/internal/graph"
	"scrobblegraph/internal/logging"
	"scrobblegraph/internal/resolve"
)

type lookupAnswer struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	URI    string `json:"uri"`
	Source string `json:"source"`
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "lookup NAME...",
		Short: "Resolve entity names the way a conversion would",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := graph.ParseKind(kindFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.runConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			discovery, err := convert.OpenDiscovery(cmd.Context(), cfg, nil, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := discovery.Close(); err != nil {
					logger.Warn("failed to close lookup cache", logging.Error(err))
				}
			}()

			resolver := resolve.New(resolve.Options{
				LocalNamespace:  cfg.Graph.LocalNamespace,
				Discoverer:      discovery.Discoverer,
				FallbackOnError: cfg.FallbackOnLookupError(),
				Logger:          logger,
			})

			answers := make([]lookupAnswer, 0, len(args))
			for _, name := range args {
				name = strings.TrimSpace(name)
				uri, err := resolver.Resolve(cmd.Context(), name, "", kind)
				if err != nil {
					return err
				}
				source := "lookup"
				switch {
				case uri.IsZero():
					source = "none"
				case uri.Under(cfg.Graph.LocalNamespace):
					source = "local"
				}
				answers = append(answers, lookupAnswer{Name: name, Kind: kind.String(), URI: string(uri), Source: source})
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), answers)
			}
			rows := make([][]string, 0, len(answers))
			for _, a := range answers {
				rows = append(rows, []string{a.Name, a.URI, a.Source})
			}
			printTable(cmd.OutOrStdout(), []string{"Name", "URI", "Source"}, rows, nil)
			if !cfg.Lookup.Enabled {
				fmt.Fprintln(cmd.ErrOrStderr(), "lookup disabled in config; showing local URIs")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "artist", "Entity kind: track, artist, album or application")
	return cmd
}
