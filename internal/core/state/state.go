// Package state holds the in-memory graph recovered from the query log and
// grown during one run.
package state

import (
	"strings"

	"github.com/agenthands/kgraph/internal/core/model"
)

// GraphState indexes nodes by id and keeps relationships in append order.
// It is owned by a single run and is not safe for concurrent use.
type GraphState struct {
	nodes         map[string]model.Node
	order         []string
	relationships []model.Relationship
}

// Stats counts the graph by label.
type Stats struct {
	TotalNodes         int `json:"total_nodes"`
	TotalRelationships int `json:"total_relationships"`
	Concepts           int `json:"concepts"`
	Tags               int `json:"tags"`
	Thoughts           int `json:"thoughts"`
	Categories         int `json:"categories"`
	Dates              int `json:"dates"`
}

func New() *GraphState {
	return &GraphState{nodes: make(map[string]model.Node)}
}

func (s *GraphState) HasNode(id string) bool {
	_, ok := s.nodes[id]
	return ok
}

func (s *GraphState) Node(id string) (model.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// AddNode inserts or overwrites the node at n.ID. An overwritten node keeps
// its original position.
func (s *GraphState) AddNode(n model.Node) {
	if _, ok := s.nodes[n.ID]; !ok {
		s.order = append(s.order, n.ID)
	}
	s.nodes[n.ID] = n
}

// AddRelationship appends r. Duplicates are kept.
func (s *GraphState) AddRelationship(r model.Relationship) {
	s.relationships = append(s.relationships, r)
}

// HasConcept matches the Concept name exactly, case included.
func (s *GraphState) HasConcept(name string) bool {
	_, ok := s.ConceptID(name)
	return ok
}

// ConceptID returns the first Concept whose name equals name exactly.
func (s *GraphState) ConceptID(name string) (string, bool) {
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Label == model.LabelConcept && n.Name() == name {
			return id, true
		}
	}
	return "", false
}

// ConceptIDFold is ConceptID with surrounding whitespace trimmed and case
// folded on both sides.
func (s *GraphState) ConceptIDFold(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Label == model.LabelConcept && strings.EqualFold(strings.TrimSpace(n.Name()), name) {
			return id, true
		}
	}
	return "", false
}

func (s *GraphState) Concepts() []string {
	return s.names(model.LabelConcept)
}

func (s *GraphState) Tags() []string {
	return s.names(model.LabelTag)
}

func (s *GraphState) Categories() []string {
	return s.names(model.LabelCategory)
}

func (s *GraphState) names(label model.Label) []string {
	var out []string
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Label == label {
			if name := n.Name(); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// NodesByLabel returns the nodes with label in insertion order.
func (s *GraphState) NodesByLabel(label model.Label) []model.Node {
	var out []model.Node
	for _, id := range s.order {
		if n := s.nodes[id]; n.Label == label {
			out = append(out, n)
		}
	}
	return out
}

// Nodes returns every node in insertion order.
func (s *GraphState) Nodes() []model.Node {
	out := make([]model.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Relationships returns a copy of the relationship sequence.
func (s *GraphState) Relationships() []model.Relationship {
	out := make([]model.Relationship, len(s.relationships))
	copy(out, s.relationships)
	return out
}

func (s *GraphState) NodeCount() int {
	return len(s.nodes)
}

func (s *GraphState) RelationshipCount() int {
	return len(s.relationships)
}

func (s *GraphState) Stats() Stats {
	st := Stats{
		TotalNodes:         len(s.nodes),
		TotalRelationships: len(s.relationships),
	}
	for _, n := range s.nodes {
		switch n.Label {
		case model.LabelConcept:
			st.Concepts++
		case model.LabelTag:
			st.Tags++
		case model.LabelThought:
			st.Thoughts++
		case model.LabelCategory:
			st.Categories++
		case model.LabelDate:
			st.Dates++
		}
	}
	return st
}
