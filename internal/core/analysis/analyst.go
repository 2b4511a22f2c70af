// Package analysis settles categories, folds reworded concepts into existing
// ones and proposes concept-to-concept relationships.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core/common"
	"github.com/agenthands/kgraph/internal/core/dedupe"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
	"github.com/agenthands/kgraph/internal/llm"
)

const (
	maxPromptCategories = 20
	maxPromptSummary    = 500
)

// Analyst works without an LLM too: categories then only match existing ones
// by name, duplicates are only folded by case, and no relations are found.
type Analyst struct {
	LLM      llm.LLMClient
	Resolver *dedupe.Resolver
	Config   config.AnalysisConfig
	Logger   *zap.Logger
}

func NewAnalyst(client llm.LLMClient, cfg config.AnalysisConfig, logger *zap.Logger) *Analyst {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyst{LLM: client, Config: cfg, Logger: logger}
	if cfg.ResolveDuplicates {
		a.Resolver = dedupe.NewResolver(client, cfg.ConceptDuplicate, logger)
	}
	return a
}

// Analyze reads st but does not change it.
func (a *Analyst) Analyze(ctx context.Context, st *state.GraphState, batch model.CandidateBatch) (model.Analysis, error) {
	categories := st.Categories()
	existing := st.Concepts()
	resolved := make(map[string]string)

	docs := make([]model.DocumentCandidate, len(batch.Documents))
	for i, doc := range batch.Documents {
		doc.Category = a.categorize(ctx, doc, categories)
		if !containsFold(categories, doc.Category) {
			categories = append(categories, doc.Category)
		}
		doc.Concepts = a.resolveConcepts(ctx, doc.Concepts, existing, resolved)
		docs[i] = doc
	}

	analysis := model.Analysis{
		Documents: docs,
		Relations: a.relations(ctx, conceptNames(docs), existing),
	}
	if err := ctx.Err(); err != nil {
		return model.Analysis{}, err
	}
	a.Logger.Info("analysis finished",
		zap.Int("documents", len(docs)),
		zap.Int("relations", len(analysis.Relations)))
	return analysis, nil
}

func (a *Analyst) categorize(ctx context.Context, doc model.DocumentCandidate, existing []string) string {
	suggested := strings.TrimSpace(doc.Category)
	if suggested != "" {
		for _, c := range existing {
			if strings.EqualFold(c, suggested) {
				return c
			}
		}
	}
	fallback := suggested
	if fallback == "" {
		fallback = model.DefaultCategory
	}
	if a.LLM == nil {
		return fallback
	}

	tmpl := a.Config.Category
	if tmpl == "" {
		tmpl = config.DefaultCategoryPrompt
	}
	prompt := fmt.Sprintf(tmpl,
		strings.Join(head(existing, maxPromptCategories), ", "),
		doc.Document.Title,
		common.Truncate(doc.Summary, maxPromptSummary),
		suggested)
	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		a.Logger.Warn("category decision failed", zap.String("path", doc.Document.Path), zap.Error(err))
		return fallback
	}
	decision, err := common.ParseJSON[model.CategoryDecision](response)
	if err != nil || strings.TrimSpace(decision.Category) == "" {
		a.Logger.Warn("category decision unusable", zap.String("path", doc.Document.Path), zap.Error(err))
		return fallback
	}
	category := strings.TrimSpace(decision.Category)
	for _, c := range existing {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return category
}

// resolveConcepts renames candidates that duplicate an existing concept.
// Verdicts are cached per lower-cased name for the whole batch.
func (a *Analyst) resolveConcepts(ctx context.Context, concepts []model.ConceptCandidate, existing []string, cache map[string]string) []model.ConceptCandidate {
	if a.Resolver == nil || len(existing) == 0 {
		return concepts
	}
	out := make([]model.ConceptCandidate, len(concepts))
	for i, c := range concepts {
		out[i] = c
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			continue
		}
		matched, ok := cache[key]
		if !ok {
			var err error
			matched, err = a.Resolver.Resolve(ctx, c.Name, existing)
			if err != nil {
				a.Logger.Warn("concept resolution failed", zap.String("concept", c.Name), zap.Error(err))
			}
			cache[key] = matched
		}
		if matched != "" {
			out[i].Name = matched
		}
	}
	return out
}

func (a *Analyst) relations(ctx context.Context, names, existing []string) []model.RelationCandidate {
	if a.LLM == nil || len(names) == 0 {
		return nil
	}
	names = head(names, a.Config.MaxNewConcepts)

	var out []model.RelationCandidate
	if len(existing) > 0 {
		tmpl := a.Config.CrossRelations
		if tmpl == "" {
			tmpl = config.DefaultCrossRelationsPrompt
		}
		prompt := fmt.Sprintf(tmpl,
			strings.Join(names, ", "),
			strings.Join(head(existing, a.Config.MaxExistingConcepts), ", "))
		out = append(out, a.askRelations(ctx, "cross", prompt)...)
	}
	if len(names) > 1 {
		tmpl := a.Config.InternalRelations
		if tmpl == "" {
			tmpl = config.DefaultInternalRelationsPrompt
		}
		out = append(out, a.askRelations(ctx, "internal", fmt.Sprintf(tmpl, strings.Join(names, ", ")))...)
	}
	return out
}

func (a *Analyst) askRelations(ctx context.Context, kind, prompt string) []model.RelationCandidate {
	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		a.Logger.Warn("relationship analysis failed", zap.String("kind", kind), zap.Error(err))
		return nil
	}
	result, err := common.ParseJSON[model.RelationExtraction](response)
	if err != nil {
		a.Logger.Warn("relationship analysis unusable", zap.String("kind", kind), zap.Error(err))
		return nil
	}
	a.Logger.Debug("relationships found", zap.String("kind", kind), zap.Int("count", len(result.Relationships)))
	return result.Relationships
}

// conceptNames lists distinct concept names in batch order.
func conceptNames(docs []model.DocumentCandidate) []string {
	var names []string
	for _, d := range docs {
		for _, c := range d.Concepts {
			name := strings.TrimSpace(c.Name)
			if name != "" && !containsFold(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func head(list []string, n int) []string {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
