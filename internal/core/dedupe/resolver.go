package dedupe

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core/common"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/llm"
)

// Resolver asks the LLM whether a new concept is an existing one worded
// differently. Only names FindSimilar already matched are offered.
type Resolver struct {
	LLM    llm.LLMClient
	Prompt string
	Logger *zap.Logger
}

func NewResolver(client llm.LLMClient, prompt string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{LLM: client, Prompt: prompt, Logger: logger}
}

// Resolve returns the existing concept that name duplicates, or "" when name
// is new. A case-insensitive exact match is answered without the LLM.
func (r *Resolver) Resolve(ctx context.Context, name string, existing []string) (string, error) {
	similar := FindSimilar(name, existing)
	if len(similar) == 0 {
		return "", nil
	}
	for _, s := range similar {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	if r.LLM == nil {
		return "", nil
	}

	tmpl := r.Prompt
	if tmpl == "" {
		tmpl = config.DefaultConceptDuplicatePrompt
	}
	response, err := r.LLM.Generate(ctx, fmt.Sprintf(tmpl, name, strings.Join(similar, ", ")))
	if err != nil {
		return "", fmt.Errorf("failed to generate duplicate verdict: %w", err)
	}
	verdict, err := common.ParseJSON[model.ConceptDuplicate](response)
	if err != nil {
		return "", fmt.Errorf("failed to parse duplicate verdict: %w", err)
	}
	if !verdict.IsDuplicate {
		return "", nil
	}
	for _, s := range similar {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(verdict.MatchedConcept)) {
			r.Logger.Debug("concept resolved as duplicate",
				zap.String("concept", name),
				zap.String("existing", s),
				zap.String("reason", verdict.Reason))
			return s, nil
		}
	}
	// the model named something it was not offered
	return "", nil
}
