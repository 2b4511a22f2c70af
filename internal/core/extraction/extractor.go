// Package extraction proposes concepts, categories, dates and tags for
// parsed documents.
package extraction

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core/common"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/llm"
)

const (
	DefaultContentLimit = 3000

	fallbackConfidence  = 0.5
	fallbackMinCount    = 2
	fallbackMaxConcepts = 10
	summaryLimit        = 100
)

var keywordPattern = regexp.MustCompile(`[가-힣]{2,}|[a-zA-Z]{4,}`)

type Extractor struct {
	LLM          llm.LLMClient
	Prompt       string
	ContentLimit int
	Concurrency  int
	Logger       *zap.Logger
}

func NewExtractor(client llm.LLMClient, cfg config.ExtractionConfig, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		LLM:          client,
		Prompt:       cfg.Concepts,
		ContentLimit: cfg.ContentLimit,
		Concurrency:  1,
		Logger:       logger,
	}
}

// ExtractConcepts asks the LLM for concepts, a category and a summary. When
// there is no LLM, or it fails, a keyword count over the content is used.
func (e *Extractor) ExtractConcepts(ctx context.Context, content string) model.ConceptExtraction {
	if e.LLM == nil {
		return KeywordConcepts(content)
	}
	result, err := e.generate(ctx, content)
	if err != nil {
		e.Logger.Warn("concept extraction failed, using keyword fallback", zap.Error(err))
		return KeywordConcepts(content)
	}
	return result
}

func (e *Extractor) generate(ctx context.Context, content string) (model.ConceptExtraction, error) {
	limit := e.ContentLimit
	if limit <= 0 {
		limit = DefaultContentLimit
	}
	tmpl := e.Prompt
	if tmpl == "" {
		tmpl = config.DefaultConceptsPrompt
	}

	response, err := e.LLM.Generate(ctx, fmt.Sprintf(tmpl, common.Truncate(content, limit)))
	if err != nil {
		return model.ConceptExtraction{}, fmt.Errorf("failed to generate concepts: %w", err)
	}
	result, err := common.ParseJSON[model.ConceptExtraction](response)
	if err != nil {
		return model.ConceptExtraction{}, fmt.Errorf("failed to extract concepts: %w", err)
	}
	return result, nil
}

// KeywordConcepts picks the words that occur at least twice: Hangul runs of
// two or more syllables and Latin runs of four or more letters, lower-cased.
func KeywordConcepts(content string) model.ConceptExtraction {
	counts := make(map[string]int)
	var order []string
	for _, w := range keywordPattern.FindAllString(content, -1) {
		w = strings.ToLower(w)
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// stable sort keeps first appearance order among equal counts
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var concepts []model.ConceptCandidate
	for _, w := range order {
		if len(concepts) == fallbackMaxConcepts {
			break
		}
		if counts[w] < fallbackMinCount {
			continue
		}
		confidence := fallbackConfidence
		concepts = append(concepts, model.ConceptCandidate{
			Name:       w,
			Type:       "keyword",
			Confidence: &confidence,
		})
	}

	return model.ConceptExtraction{
		Concepts: concepts,
		Category: model.DefaultCategory,
		Summary:  common.Truncate(content, summaryLimit),
	}
}
