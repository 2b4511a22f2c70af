package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/kgraph/internal/core"
	"github.com/agenthands/kgraph/internal/driver"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Load the query log into Memgraph",
		Long: `Recover the graph from the query log and merge it into Memgraph.
Nodes are matched by id, so pushing twice does not create duplicates.

Connection settings come from [memgraph] or MEMGRAPH_URI, MEMGRAPH_USER
and MEMGRAPH_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			st, _, err := core.NewBuilder(cfg, nil, logger).Graph()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
			if err != nil {
				return err
			}
			defer d.Close(ctx)

			stats, err := driver.NewExporter(d, logger).Push(ctx, st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d nodes and %d relationships to %s\n", stats.Nodes, stats.Relationships, cfg.Memgraph.URI)
			if stats.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d records with invalid labels or types\n", stats.Skipped)
			}
			return nil
		},
	}
}
