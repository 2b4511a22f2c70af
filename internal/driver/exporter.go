package driver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
)

// Exporter copies a recovered graph into Memgraph. Nodes are merged by id
// and relationships by (source, type, target), so repeated pushes and
// duplicate log entries collapse into one record each.
type Exporter struct {
	Driver GraphDriver
	Logger *zap.Logger
}

func NewExporter(d GraphDriver, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{Driver: d, Logger: logger}
}

// PushStats counts what was sent. Skipped records had a label or type that
// is not a valid identifier.
type PushStats struct {
	Nodes         int `json:"nodes"`
	Relationships int `json:"relationships"`
	Skipped       int `json:"skipped"`
}

func (e *Exporter) Push(ctx context.Context, st *state.GraphState) (PushStats, error) {
	var stats PushStats
	nodes := st.Nodes()

	var labels []string
	seen := make(map[model.Label]bool)
	for _, n := range nodes {
		if !seen[n.Label] && checkIdent(string(n.Label)) == nil {
			seen[n.Label] = true
			labels = append(labels, string(n.Label))
		}
	}
	if err := e.Driver.BuildIndices(ctx, labels); err != nil {
		return stats, fmt.Errorf("failed to build indices: %w", err)
	}

	for _, n := range nodes {
		q, err := MergeNodeQuery(string(n.Label))
		if err != nil {
			e.Logger.Warn("skipping node", zap.String("id", n.ID), zap.Error(err))
			stats.Skipped++
			continue
		}
		params := map[string]any{"id": n.ID, "props": n.Properties.Map()}
		if _, err := e.Driver.ExecuteQuery(ctx, q, params); err != nil {
			return stats, fmt.Errorf("failed to push node '%s': %w", n.ID, err)
		}
		stats.Nodes++
	}

	for _, r := range st.Relationships() {
		q, err := MergeRelationshipQuery(r.Type)
		if err != nil {
			e.Logger.Warn("skipping relationship", zap.String("source", r.SourceID), zap.String("target", r.TargetID), zap.Error(err))
			stats.Skipped++
			continue
		}
		params := map[string]any{
			"source_id": r.SourceID,
			"target_id": r.TargetID,
			"props":     r.Properties.Map(),
		}
		if _, err := e.Driver.ExecuteQuery(ctx, q, params); err != nil {
			return stats, fmt.Errorf("failed to push relationship %s-[%s]->%s: %w", r.SourceID, r.Type, r.TargetID, err)
		}
		stats.Relationships++
	}

	e.Logger.Info("graph pushed",
		zap.Int("nodes", stats.Nodes),
		zap.Int("relationships", stats.Relationships),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}
