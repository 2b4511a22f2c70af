package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeCypher(t *testing.T) {
	n := Node{
		ID:    "concept_Graph_Theory",
		Label: LabelConcept,
		Properties: Properties{
			{Key: "name", Value: StringValue("Graph Theory")},
			{Key: "type", Value: StringValue("idea")},
		},
	}
	assert.Equal(t,
		`UPSERT (n:Concept {id: "concept_Graph_Theory", name: "Graph Theory", type: "idea"})`,
		n.Cypher())
}

func TestNodeCypher_NoProperties(t *testing.T) {
	n := Node{ID: "x", Label: LabelTag}
	assert.Equal(t, `UPSERT (n:Tag {id: "x"})`, n.Cypher())
}

func TestRelationshipCypher(t *testing.T) {
	r := Relationship{
		SourceID:   "thought_a",
		TargetID:   "concept_b",
		Type:       RelMentions,
		Properties: Properties{{Key: "confidence", Value: FloatValue(0.9)}},
	}
	assert.Equal(t,
		`MATCH (a {id: "thought_a"}), (b {id: "concept_b"}) UPSERT (a)-[:MENTIONS {confidence: 0.9}]->(b)`,
		r.Cypher())

	r.Properties = nil
	assert.Equal(t,
		`MATCH (a {id: "thought_a"}), (b {id: "concept_b"}) UPSERT (a)-[:MENTIONS]->(b)`,
		r.Cypher())
}

func TestValueLiteral(t *testing.T) {
	assert.Equal(t, `"plain"`, StringValue("plain").Literal())
	assert.Equal(t, `"a \"q\" \\ b\nc\td\re"`, StringValue("a \"q\" \\ b\nc\td\re").Literal())
	assert.Equal(t, "42", IntValue(42).Literal())
	assert.Equal(t, "-7", IntValue(-7).Literal())
	assert.Equal(t, "1.0", FloatValue(1).Literal())
	assert.Equal(t, "0.5", FloatValue(0.5).Literal())
	assert.Equal(t, `"NaN"`, FloatValue(math.NaN()).Literal())
}

func TestPropertiesSetAndEqual(t *testing.T) {
	var p Properties
	p.Set("a", IntValue(1))
	p.Set("b", StringValue("x"))
	p.Set("a", IntValue(2))

	assert.Len(t, p, 2)
	assert.Equal(t, "a", p[0].Key)
	v, ok := p.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(2), v.Int)

	reordered := Properties{{Key: "b", Value: StringValue("x")}, {Key: "a", Value: IntValue(2)}}
	assert.True(t, p.Equal(reordered))
	assert.False(t, p.Equal(reordered.Without("a")))
	assert.Equal(t, map[string]any{"a": int64(2), "b": "x"}, p.Map())
}

func TestNormalizeRelType(t *testing.T) {
	assert.Equal(t, "RELATED_TO", NormalizeRelType(""))
	assert.Equal(t, "SUPPORTS", NormalizeRelType("supports"))
	assert.Equal(t, "PART_OF", NormalizeRelType("part of"))
	assert.Equal(t, "IS_A", NormalizeRelType("is-a"))
	assert.Equal(t, "_1ST", NormalizeRelType("1st"))
	assert.Equal(t, "___", NormalizeRelType("관계망"))
}
