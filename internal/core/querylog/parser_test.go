package querylog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
)

func TestParseStatement_Node(t *testing.T) {
	stmt, ok := ParseStatement(`UPSERT (n:Concept {id: "concept_Graph_Theory", name: "Graph Theory", type: "idea", weight: 3, score: 0.75})`)
	require.True(t, ok)
	require.NotNil(t, stmt.Node)

	n := stmt.Node
	assert.Equal(t, "concept_Graph_Theory", n.ID)
	assert.Equal(t, model.LabelConcept, n.Label)
	assert.Equal(t, model.Properties{
		{Key: "name", Value: model.StringValue("Graph Theory")},
		{Key: "type", Value: model.StringValue("idea")},
		{Key: "weight", Value: model.IntValue(3)},
		{Key: "score", Value: model.FloatValue(0.75)},
	}, n.Properties)
}

func TestParseStatement_NodeVariants(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		id    string
		label model.Label
	}{
		{"merge keyword", `MERGE (n:Tag {id: "tag_go", name: "go"})`, "tag_go", model.LabelTag},
		{"lowercase keyword", `upsert (n:Tag {id: "tag_go"})`, "tag_go", model.LabelTag},
		{"no variable", `UPSERT (:Date {id: "date_20240101", date: "2024-01-01"})`, "date_20240101", model.LabelDate},
		{"bare word value", `UPSERT (n:Concept {id: concept_x, name: x})`, "concept_x", model.LabelConcept},
		{"single quotes", `UPSERT (n:Concept {id: 'concept_x'})`, "concept_x", model.LabelConcept},
		{"hangul", `UPSERT (n:Concept {id: "concept_그래프", name: "그래프"})`, "concept_그래프", model.LabelConcept},
		{"prefixed", `; UPSERT (n:Concept {id: "concept_x"});`, "concept_x", model.LabelConcept},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, ok := ParseStatement(tt.line)
			require.True(t, ok)
			require.NotNil(t, stmt.Node)
			assert.Equal(t, tt.id, stmt.Node.ID)
			assert.Equal(t, tt.label, stmt.Node.Label)
			_, hasID := stmt.Node.Properties.Get("id")
			assert.False(t, hasID)
		})
	}
}

func TestParseStatement_Relationship(t *testing.T) {
	stmt, ok := ParseStatement(`MATCH (a {id: "thought_x"}), (b {id: "concept_y"}) UPSERT (a)-[:MENTIONS {confidence: 0.8}]->(b)`)
	require.True(t, ok)
	require.NotNil(t, stmt.Relationship)
	assert.Equal(t, model.Relationship{
		SourceID:   "thought_x",
		TargetID:   "concept_y",
		Type:       model.RelMentions,
		Properties: model.Properties{{Key: "confidence", Value: model.FloatValue(0.8)}},
	}, *stmt.Relationship)

	stmt, ok = ParseStatement(`MATCH (a {id: "a"}), (b {id: "b"}) UPSERT (a)-[:RELATED_TO]->(b)`)
	require.True(t, ok)
	require.NotNil(t, stmt.Relationship)
	assert.Equal(t, "RELATED_TO", stmt.Relationship.Type)
	assert.Empty(t, stmt.Relationship.Properties)
}

func TestParseStatement_StringEscapes(t *testing.T) {
	stmt, ok := ParseStatement(`UPSERT (n:Thought {id: "t", content: "say \"hi\"\nnext -[:X]-> \\ done"})`)
	require.True(t, ok)
	require.NotNil(t, stmt.Node)
	assert.Equal(t, "say \"hi\"\nnext -[:X]-> \\ done", stmt.Node.Properties.Text("content"))
}

func TestParseStatement_TrailingComment(t *testing.T) {
	lines := []string{
		`UPSERT (n:Concept {id: "concept_Go", name: "Go"}) // Bob's edit`,
		`UPSERT (n:Concept {id: "concept_Go", name: "Go"}) Bob's edit`,
	}
	for _, line := range lines {
		stmt, ok := ParseStatement(line)
		require.True(t, ok, line)
		require.NotNil(t, stmt.Node, line)
		assert.Equal(t, "concept_Go", stmt.Node.ID)
		assert.Equal(t, "Go", stmt.Node.Properties.Text("name"))
	}

	stmt, ok := ParseStatement(`UPSERT (n:Concept {id: "concept_URL", url: "http://x.io/a"})`)
	require.True(t, ok)
	assert.Equal(t, "http://x.io/a", stmt.Node.Properties.Text("url"))
}

func TestParseStatement_Rejects(t *testing.T) {
	lines := []string{
		`UPSERT (n:Concept {name: "no id"})`,
		`UPSERT (n:Concept {id: "unterminated})`,
		`UPSERT (n:Concept {id: "x" name: "missing comma"})`,
		`MATCH (a {id: "a"}) UPSERT (a)-[:ONLY_ONE_ANCHOR]->(b)`,
		`MATCH (a {id: "a"}), (b {id: "b"}) UPSERT (a)-[:]->(b)`,
		`CREATE INDEX ON :Concept(id)`,
		`random text`,
	}
	for _, line := range lines {
		_, ok := ParseStatement(line)
		assert.False(t, ok, line)
	}
}

func TestParse_SkipsAndCounts(t *testing.T) {
	log := strings.Join([]string{
		"",
		"// === Added: 2024-01-01 10:00:00 ===",
		`UPSERT (n:Concept {id: "concept_A", name: "A"})`,
		"hand edited garbage",
		`UPSERT (n:Concept {id: "concept_B", name: "B"})`,
		`MATCH (a {id: "concept_A"}), (b {id: "concept_B"}) UPSERT (a)-[:RELATED_TO {reason: "r"}]->(b)`,
		`MATCH (a {id: "concept_A"}), (b {id: "concept_B"}) UPSERT (a)-[:RELATED_TO {reason: "r"}]->(b)`,
		`UPSERT (n:Concept {id: "concept_A", name: "A", type: "updated"})`,
	}, "\n")

	st := state.New()
	stats, err := Parse(strings.NewReader(log), st)
	require.NoError(t, err)

	assert.Equal(t, ParseStats{Lines: 8, Nodes: 3, Relationships: 2, Skipped: 1}, stats)
	assert.Equal(t, 2, st.NodeCount())
	assert.Equal(t, 2, st.RelationshipCount())

	// last write wins on replay
	a, ok := st.Node("concept_A")
	require.True(t, ok)
	assert.Equal(t, "updated", a.Properties.Text("type"))
}

func TestLoad_MissingFile(t *testing.T) {
	st, stats, err := Load(filepath.Join(t.TempDir(), "missing.cypher"))
	require.NoError(t, err)
	assert.Equal(t, 0, st.NodeCount())
	assert.Equal(t, ParseStats{}, stats)
}

func TestLoad_Directory(t *testing.T) {
	_, _, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.cypher")
	require.NoError(t, os.WriteFile(path, []byte(`UPSERT (n:Tag {id: "tag_go", name: "go"})`+"\n"), 0o644))

	st, stats, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, []string{"go"}, st.Tags())
}
