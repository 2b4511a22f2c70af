// Package core wires the pipeline: recover the graph from the query log,
// research documents, analyze candidates, merge and append the delta.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core/analysis"
	"github.com/agenthands/kgraph/internal/core/community"
	"github.com/agenthands/kgraph/internal/core/dedupe"
	"github.com/agenthands/kgraph/internal/core/extraction"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/querylog"
	"github.com/agenthands/kgraph/internal/core/state"
	"github.com/agenthands/kgraph/internal/llm"
	"github.com/agenthands/kgraph/internal/loader"
)

// Builder runs the pipeline against one query log. Runs are serialised; the
// log has a single writer.
type Builder struct {
	Config        *config.Config
	LLM           llm.LLMClient
	Loader        *loader.Loader
	Extractor     *extraction.Extractor
	Analyst       *analysis.Analyst
	Logger        *zap.Logger
	Now           func() time.Time
	UUIDGenerator func() string

	mu sync.Mutex
}

// NewBuilder accepts a nil client; every stage then uses its fallback.
func NewBuilder(cfg *config.Config, client llm.LLMClient, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	extractor := extraction.NewExtractor(client, cfg.Extraction, logger)
	extractor.Concurrency = cfg.Concurrency.Research
	return &Builder{
		Config:        cfg,
		LLM:           client,
		Loader:        loader.New(cfg.Extraction.Extensions, logger),
		Extractor:     extractor,
		Analyst:       analysis.NewAnalyst(client, cfg.Analysis, logger),
		Logger:        logger,
		Now:           time.Now,
		UUIDGenerator: uuid.NewString,
	}
}

// Report is the content of the stats command and endpoint.
type Report struct {
	OutputFile string              `json:"output_file"`
	Stats      state.Stats         `json:"stats"`
	Parse      querylog.ParseStats `json:"parse"`
	Clusters   []community.Cluster `json:"clusters,omitempty"`
}

// Run processes every supported file in inputDir and appends what is new to
// the query log. An empty directory is a successful run with no writes.
func (b *Builder) Run(ctx context.Context, inputDir string) (model.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := b.newResult()
	log := b.Logger.With(zap.String("run_id", result.RunID))

	st, err := b.recover(log)
	if err != nil {
		return result, err
	}

	docs, err := b.Loader.LoadDir(inputDir)
	if err != nil {
		return result, fmt.Errorf("load stage: %w", err)
	}
	if len(docs) == 0 {
		log.Info("no documents to process", zap.String("input", inputDir))
		result.Success = true
		return result, nil
	}

	batch, err := b.Extractor.Research(ctx, docs)
	if err != nil {
		return result, fmt.Errorf("research stage: %w", err)
	}

	analyzed, err := b.Analyst.Analyze(ctx, st, batch)
	if err != nil {
		return result, fmt.Errorf("analysis stage: %w", err)
	}

	return b.write(log, st, analyzed, result)
}

// MergeCandidates merges already extracted candidates. Categories and
// duplicate names are resolved against the log without an LLM, and
// relations are taken as given.
func (b *Builder) MergeCandidates(ctx context.Context, batch model.CandidateBatch, relations []model.RelationCandidate) (model.Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := b.newResult()
	log := b.Logger.With(zap.String("run_id", result.RunID))

	st, err := b.recover(log)
	if err != nil {
		return result, err
	}

	analyzed, err := analysis.NewAnalyst(nil, b.Config.Analysis, log).Analyze(ctx, st, batch)
	if err != nil {
		return result, fmt.Errorf("analysis stage: %w", err)
	}
	analyzed.Relations = append(analyzed.Relations, relations...)

	return b.write(log, st, analyzed, result)
}

// Graph recovers the current graph from the query log.
func (b *Builder) Graph() (*state.GraphState, querylog.ParseStats, error) {
	return querylog.Load(b.Config.Paths.Output)
}

// Report summarises the query log, including concept clusters found by
// label propagation.
func (b *Builder) Report() (Report, error) {
	st, stats, err := b.Graph()
	if err != nil {
		return Report{}, err
	}
	clusters, err := community.ConceptClusters(st, community.NewLabelPropagationDetector())
	if err != nil {
		return Report{}, fmt.Errorf("failed to detect concept clusters: %w", err)
	}
	return Report{
		OutputFile: b.Config.Paths.Output,
		Stats:      st.Stats(),
		Parse:      stats,
		Clusters:   clusters,
	}, nil
}

func (b *Builder) newResult() model.Result {
	gen := b.UUIDGenerator
	if gen == nil {
		gen = uuid.NewString
	}
	return model.Result{RunID: gen(), OutputFile: b.Config.Paths.Output}
}

func (b *Builder) recover(log *zap.Logger) (*state.GraphState, error) {
	st, stats, err := b.Graph()
	if err != nil {
		return nil, fmt.Errorf("recover stage: %w", err)
	}
	log.Info("graph recovered",
		zap.String("path", b.Config.Paths.Output),
		zap.Int("nodes", st.NodeCount()),
		zap.Int("relationships", st.RelationshipCount()))
	log.Debug("query log parsed",
		zap.Int("lines", stats.Lines),
		zap.Int("skipped", stats.Skipped))
	return st, nil
}

func (b *Builder) write(log *zap.Logger, st *state.GraphState, analyzed model.Analysis, result model.Result) (model.Result, error) {
	engine := dedupe.NewEngine(st, log)
	if b.Now != nil {
		engine.Now = b.Now
	}
	if b.Config.Graph.ThoughtContentLimit > 0 {
		engine.ThoughtContentLimit = b.Config.Graph.ThoughtContentLimit
	}
	if b.Config.Graph.MaxTags > 0 {
		engine.MaxTags = b.Config.Graph.MaxTags
	}
	delta := engine.Merge(analyzed)

	writer := querylog.NewWriter(b.Config.Paths.Output)
	if b.Now != nil {
		writer.Now = b.Now
	}
	if err := writer.Append(delta.Statements); err != nil {
		return result, fmt.Errorf("write stage: %w", err)
	}

	result.Success = true
	result.ProcessedDocs = len(analyzed.Documents)
	result.NewNodes = len(delta.Nodes)
	result.NewRelationships = len(delta.Relationships)
	result.TotalQueries = len(delta.Statements)
	log.Info("run finished",
		zap.Int("processed_docs", result.ProcessedDocs),
		zap.Int("new_nodes", result.NewNodes),
		zap.Int("new_relationships", result.NewRelationships),
		zap.Int("total_queries", result.TotalQueries))
	return result, nil
}
