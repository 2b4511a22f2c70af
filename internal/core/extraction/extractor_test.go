package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/llm/llmtest"
)

func TestExtractConcepts(t *testing.T) {
	mockLLM := &llmtest.MockClient{Response: `Here you go:
	{
		"concepts": [
			{"name": "Graph Theory", "type": "idea", "confidence": 0.9},
			{"name": "Euler", "type": "person", "confidence": 0.7}
		],
		"category": "Mathematics",
		"summary": "Bridges of Koenigsberg."
	}`}

	extractor := NewExtractor(mockLLM, config.ExtractionConfig{Concepts: "doc: %s", ContentLimit: 5}, nil)
	result := extractor.ExtractConcepts(context.Background(), "Euler and the bridges")

	require.Len(t, result.Concepts, 2)
	graphConfidence := 0.9
	assert.Equal(t, model.ConceptCandidate{Name: "Graph Theory", Type: "idea", Confidence: &graphConfidence}, result.Concepts[0])
	assert.Equal(t, "Mathematics", result.Category)
	assert.Equal(t, "Bridges of Koenigsberg.", result.Summary)

	// content is capped before it reaches the prompt
	assert.Equal(t, "doc: Euler", mockLLM.Prompts[0])
}

func TestExtractConcepts_FallbackOnFailure(t *testing.T) {
	content := "Graph graph GRAPH theory theory vertex 그래프 그래프 edge"

	for name, client := range map[string]*llmtest.MockClient{
		"llm error":    {Err: errors.New("timeout")},
		"invalid json": {Response: "I cannot help with that."},
	} {
		t.Run(name, func(t *testing.T) {
			extractor := NewExtractor(client, config.ExtractionConfig{}, nil)
			result := extractor.ExtractConcepts(context.Background(), content)
			assert.Equal(t, KeywordConcepts(content), result)
		})
	}

	extractor := NewExtractor(nil, config.ExtractionConfig{}, nil)
	assert.Equal(t, KeywordConcepts(content), extractor.ExtractConcepts(context.Background(), content))
}

func TestKeywordConcepts(t *testing.T) {
	content := "Graph graph GRAPH theory theory vertex 그래프 그래프 edge"
	result := KeywordConcepts(content)

	var names []string
	for _, c := range result.Concepts {
		names = append(names, c.Name)
		require.NotNil(t, c.Confidence)
		assert.Equal(t, 0.5, *c.Confidence)
	}
	// vertex and edge appear only once
	assert.Equal(t, []string{"graph", "theory", "그래프"}, names)
	assert.Equal(t, model.DefaultCategory, result.Category)
	assert.Equal(t, content, result.Summary)

	long := KeywordConcepts(strings.Repeat("x", 150))
	assert.Len(t, []rune(long.Summary), 100)
	assert.Empty(t, long.Concepts)
}

func TestKeywordConcepts_TopTen(t *testing.T) {
	var words []string
	for _, w := range []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet", "kilo", "lima"} {
		words = append(words, w, w)
	}
	words = append(words, "lima")

	result := KeywordConcepts(strings.Join(words, " "))
	require.Len(t, result.Concepts, 10)
	assert.Equal(t, "lima", result.Concepts[0].Name)
	assert.Equal(t, "alpha", result.Concepts[1].Name)
}

func TestResearch_KeepsOrder(t *testing.T) {
	mockLLM := &llmtest.MockClient{Response: `{"concepts": [{"name": "Shared", "type": "idea", "confidence": 0.8}], "category": "Notes"}`}
	extractor := NewExtractor(mockLLM, config.ExtractionConfig{}, nil)
	extractor.Concurrency = 3

	docs := []model.Document{
		{Path: "a.md", Content: "written 2024-01-15 #go", Tags: []string{"Go", "notes"}},
		{Path: "b.md", Content: "nothing"},
		{Path: "c.md", Content: "2023년 5월 7일 meeting", Metadata: map[string]any{"date": "2023-05-01"}},
	}
	batch, err := extractor.Research(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, batch.Documents, 3)

	for i, d := range batch.Documents {
		assert.Equal(t, docs[i].Path, d.Document.Path)
		assert.Equal(t, "Notes", d.Category)
	}
	assert.Equal(t, []string{"2024-01-15"}, batch.Documents[0].Dates)
	assert.Equal(t, []string{"Go", "notes"}, batch.Documents[0].Tags)
	assert.Equal(t, []string{"2023-05-01", "2023-05-07"}, batch.Documents[2].Dates)
	assert.Len(t, batch.Concepts(), 3)
	assert.Equal(t, 3, mockLLM.Calls())
}

func TestResearch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	extractor := NewExtractor(nil, config.ExtractionConfig{}, nil)
	_, err := extractor.Research(ctx, []model.Document{{Path: "a.md"}})
	assert.ErrorIs(t, err, context.Canceled)
}
