package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/llm"
	"github.com/agenthands/kgraph/internal/loader"
)

const rule = "=================================================="

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Process input documents and append new graph statements",
		Long: `Process every supported file in the input directory and append what is
new to the query log.

Examples:
  kgraph build
  kgraph build --input ./notes --output ./out/graph.cypher
  kgraph build --model qwen2.5:7b --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if input, _ := cmd.Flags().GetString("input"); input != "" {
				cfg.Paths.Input = input
			}
			if name, _ := cmd.Flags().GetString("model"); name != "" {
				cfg.LLM.Model = name
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()

			ctx := cmd.Context()
			l := loader.New(cfg.Extraction.Extensions, logger)
			files, err := l.Collect(cfg.Paths.Input)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				if jsonOut {
					if err := os.MkdirAll(cfg.Paths.Input, 0o755); err != nil {
						return fmt.Errorf("failed to create input directory '%s': %w", cfg.Paths.Input, err)
					}
					return json.NewEncoder(out).Encode(model.Result{Success: true, OutputFile: cfg.Paths.Output})
				}
				return reportEmptyInput(out, cfg.Paths.Input, l.Extensions)
			}
			if !jsonOut {
				fmt.Fprintf(out, "Found %d input files\n", len(files))
			}

			client, err := llm.NewClient(ctx, cfg.LLM, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize LLM client: %w", err)
			}
			if closer, ok := client.(io.Closer); ok {
				defer closer.Close()
			}
			b := core.NewBuilder(cfg, client, logger)

			if !jsonOut {
				fmt.Fprintf(out, "\n%s\nKnowledge Graph Builder\n%s\n", rule, rule)
				fmt.Fprintf(out, "Input:  %s\nOutput: %s\nModel:  %s/%s\n%s\n\n", cfg.Paths.Input, cfg.Paths.Output, cfg.LLM.Provider, cfg.LLM.Model, rule)
			}

			result, err := b.Run(ctx, cfg.Paths.Input)
			if err != nil {
				logger.Error("build failed", zap.Error(err))
			}
			if jsonOut {
				if encErr := json.NewEncoder(out).Encode(result); encErr != nil {
					return fmt.Errorf("failed to encode result: %w", encErr)
				}
			} else {
				printResult(out, result, err)
			}
			return err
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input directory (overrides paths.input)")
	cmd.Flags().StringP("model", "m", "", "LLM model name, e.g. qwen2.5:7b")
	return cmd
}

// reportEmptyInput creates a missing input directory and tells the user what
// to put in it. This is not an error.
func reportEmptyInput(out io.Writer, dir string, extensions []string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create input directory '%s': %w", dir, err)
		}
		fmt.Fprintf(out, "Created input directory: %s\n", dir)
		fmt.Fprintln(out, "Add files and run again.")
	} else {
		fmt.Fprintf(out, "No input files in %s\n", dir)
	}
	fmt.Fprintf(out, "Supported formats: %s\n", strings.Join(extensions, ", "))
	return nil
}

func printResult(out io.Writer, result model.Result, err error) {
	fmt.Fprintf(out, "\n%s\n", rule)
	if err != nil {
		fmt.Fprintln(out, "Failed!")
		fmt.Fprintf(out, "  - %v\n", err)
	} else {
		fmt.Fprintln(out, "Done!")
		fmt.Fprintf(out, "  - processed documents: %d\n", result.ProcessedDocs)
		fmt.Fprintf(out, "  - new nodes:           %d\n", result.NewNodes)
		fmt.Fprintf(out, "  - new relationships:   %d\n", result.NewRelationships)
		fmt.Fprintf(out, "  - total queries:       %d\n", result.TotalQueries)
		fmt.Fprintf(out, "  - output file:         %s\n", result.OutputFile)
	}
	fmt.Fprintln(out, rule)
}
