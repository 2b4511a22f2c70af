package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kgraph",
		Short: "Build a knowledge graph from documents",
		Long: `kgraph extracts concepts, categories, dates and tags from documents
and appends them to a Cypher query log without duplicating what the log
already holds.

Workflow:
  1. research: parse documents, extract concepts and metadata
  2. analysis: assign categories, resolve duplicates, find relations
  3. write:    merge against the recovered graph, append new statements`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.toml", "Configuration file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Query log file (overrides paths.output)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBuildCmd(),
		newStatsCmd(),
		newConceptsCmd(),
		newPushCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kgraph version %s\n", version)
		},
	}
}

// setup loads .env, the config file (defaults when it is missing), the
// environment and flag overrides, and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	missing := errors.Is(err, fs.ErrNotExist)
	switch {
	case missing:
		cfg = config.Default()
	case err != nil:
		return nil, nil, err
	}
	cfg.ApplyEnv()

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.Paths.Output = output
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Logging)
	if missing {
		logger.Debug("config file not found, using defaults", zap.String("path", path))
	}
	return cfg, logger, nil
}
