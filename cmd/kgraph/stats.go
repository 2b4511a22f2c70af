package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/kgraph/internal/core"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show node and relationship counts of the query log",
		Long: `Recover the graph from the query log and show what it holds, including
concept clusters found by label propagation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			jsonOut, _ := cmd.Flags().GetBool("json")

			report, err := core.NewBuilder(cfg, nil, logger).Report()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(report)
			}

			s := report.Stats
			fmt.Fprintf(out, "Query log: %s\n\n", report.OutputFile)
			fmt.Fprintf(out, "Nodes:         %d\n", s.TotalNodes)
			fmt.Fprintf(out, "  Thoughts:    %d\n", s.Thoughts)
			fmt.Fprintf(out, "  Concepts:    %d\n", s.Concepts)
			fmt.Fprintf(out, "  Categories:  %d\n", s.Categories)
			fmt.Fprintf(out, "  Tags:        %d\n", s.Tags)
			fmt.Fprintf(out, "  Dates:       %d\n", s.Dates)
			fmt.Fprintf(out, "Relationships: %d\n", s.TotalRelationships)
			if report.Parse.Skipped > 0 {
				fmt.Fprintf(out, "Unparsed lines: %d\n", report.Parse.Skipped)
			}

			if len(report.Clusters) > 0 {
				fmt.Fprintf(out, "\nConcept clusters (%d):\n", len(report.Clusters))
				for i, c := range report.Clusters {
					fmt.Fprintf(out, "  %d. %s\n", i+1, strings.Join(c.Concepts, ", "))
				}
			}
			return nil
		},
	}
}

func newConceptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "concepts",
		Short: "List concept names in the query log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()
			jsonOut, _ := cmd.Flags().GetBool("json")

			st, _, err := core.NewBuilder(cfg, nil, logger).Graph()
			if err != nil {
				return err
			}
			concepts := st.Concepts()

			out := cmd.OutOrStdout()
			if jsonOut {
				if concepts == nil {
					concepts = []string{}
				}
				return json.NewEncoder(out).Encode(map[string]any{"concepts": concepts, "count": len(concepts)})
			}
			if len(concepts) == 0 {
				fmt.Fprintln(out, "No concepts found.")
				return nil
			}
			for _, c := range concepts {
				fmt.Fprintln(out, c)
			}
			return nil
		},
	}
}
