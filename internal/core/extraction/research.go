package extraction

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/kgraph/internal/core/model"
)

// Research builds candidates for every document. Documents are processed in
// parallel up to Concurrency; the batch keeps input order.
func (e *Extractor) Research(ctx context.Context, docs []model.Document) (model.CandidateBatch, error) {
	results := make([]model.DocumentCandidate, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	limit := e.Concurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Candidate(gctx, doc)
			e.Logger.Debug("document researched",
				zap.String("path", doc.Path),
				zap.Int("concepts", len(results[i].Concepts)),
				zap.Int("dates", len(results[i].Dates)),
				zap.Int("tags", len(results[i].Tags)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.CandidateBatch{}, err
	}
	return model.CandidateBatch{Documents: results}, nil
}

// Candidate extracts everything proposed for a single document.
func (e *Extractor) Candidate(ctx context.Context, doc model.Document) model.DocumentCandidate {
	extracted := e.ExtractConcepts(ctx, doc.Content)

	var dates []string
	if d, ok := NormalizeDate(doc.Metadata["date"]); ok {
		dates = append(dates, d)
	}
	for _, d := range ExtractDates(doc.Content) {
		if len(dates) == 0 || d != dates[0] {
			dates = append(dates, d)
		}
	}

	return model.DocumentCandidate{
		Document: doc,
		Concepts: extracted.Concepts,
		Category: extracted.Category,
		Summary:  extracted.Summary,
		Dates:    dates,
		Tags:     MergeTags(doc.Tags, ExtractTags(doc.Content)),
	}
}
