package model

import "strings"

type Label string

const (
	LabelThought  Label = "Thought"
	LabelCategory Label = "Category"
	LabelConcept  Label = "Concept"
	LabelDate     Label = "Date"
	LabelTag      Label = "Tag"
)

// UpsertKeyword starts every statement written to the query log.
const UpsertKeyword = "UPSERT"

type Node struct {
	ID         string     `json:"id"`
	Label      Label      `json:"label"`
	Properties Properties `json:"properties"`
}

// Name is the node's "name" property (Concept, Category, Tag).
func (n Node) Name() string {
	return n.Properties.Text("name")
}

// Cypher renders the node as a single-line upsert statement:
//
//	UPSERT (n:Concept {id: "concept_x", name: "x", type: "idea"})
func (n Node) Cypher() string {
	var b strings.Builder
	b.WriteString(UpsertKeyword)
	b.WriteString(" (n:")
	b.WriteString(string(n.Label))
	b.WriteString(" {id: ")
	b.WriteString(Quote(n.ID))
	if len(n.Properties) > 0 {
		b.WriteString(", ")
		b.WriteString(n.Properties.block())
	}
	b.WriteString("})")
	return b.String()
}
