// Package dedupe decides which candidate records are new to the graph and
// renders the statements for only those.
package dedupe

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core/common"
	"github.com/agenthands/kgraph/internal/core/model"
	"github.com/agenthands/kgraph/internal/core/state"
)

const (
	DefaultThoughtContentLimit = 500
	DefaultMaxTags             = 5
	DefaultMentionConfidence   = 0.8
)

// Engine merges candidates into State. Every accepted record is added to
// State before the next candidate is looked at, so a name seen earlier in a
// batch resolves to the same node later in that batch.
//
// An empty statement means "already present, nothing to write".
type Engine struct {
	State               *state.GraphState
	Now                 func() time.Time
	Logger              *zap.Logger
	ThoughtContentLimit int
	MaxTags             int
}

func NewEngine(st *state.GraphState, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		State:               st,
		Now:                 time.Now,
		Logger:              logger,
		ThoughtContentLimit: DefaultThoughtContentLimit,
		MaxTags:             DefaultMaxTags,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Thought always creates a new node; its id carries the current second.
func (e *Engine) Thought(title, content, source string) (model.Node, string) {
	at := e.now()
	n := model.Node{
		ID:    model.ThoughtID(title, at),
		Label: model.LabelThought,
		Properties: model.Properties{
			{Key: "title", Value: model.StringValue(title)},
			{Key: "content", Value: model.StringValue(common.Truncate(content, e.ThoughtContentLimit))},
			{Key: "source", Value: model.StringValue(source)},
			{Key: "created_at", Value: model.StringValue(at.Format(time.RFC3339))},
		},
	}
	e.State.AddNode(n)
	return n, n.Cypher()
}

// Concept looks the name up exactly, then case-insensitively, then by the
// id the name would get. Only a miss on all three creates a node.
func (e *Engine) Concept(name, conceptType string) (model.Node, string) {
	name = strings.TrimSpace(name)
	if id, ok := e.LookupConcept(name); ok {
		existing, _ := e.State.Node(id)
		return existing, ""
	}
	if conceptType == "" {
		conceptType = model.DefaultConceptType
	}
	n := model.Node{
		ID:    model.ConceptID(name),
		Label: model.LabelConcept,
		Properties: model.Properties{
			{Key: "name", Value: model.StringValue(name)},
			{Key: "type", Value: model.StringValue(conceptType)},
		},
	}
	e.State.AddNode(n)
	return n, n.Cypher()
}

// LookupConcept resolves a concept name to an existing node id.
func (e *Engine) LookupConcept(name string) (string, bool) {
	if id, ok := e.State.ConceptID(name); ok {
		return id, true
	}
	if id, ok := e.State.ConceptIDFold(name); ok {
		return id, true
	}
	id := model.ConceptID(strings.TrimSpace(name))
	if n, ok := e.State.Node(id); ok && n.Label == model.LabelConcept {
		return id, true
	}
	return "", false
}

func (e *Engine) Category(name string) (model.Node, string) {
	name = strings.TrimSpace(name)
	return e.byID(model.Node{
		ID:         model.CategoryID(name),
		Label:      model.LabelCategory,
		Properties: model.Properties{{Key: "name", Value: model.StringValue(name)}},
	})
}

func (e *Engine) Date(date string) (model.Node, string) {
	date = strings.TrimSpace(date)
	return e.byID(model.Node{
		ID:         model.DateID(date),
		Label:      model.LabelDate,
		Properties: model.Properties{{Key: "date", Value: model.StringValue(date)}},
	})
}

func (e *Engine) Tag(name string) (model.Node, string) {
	name = strings.TrimSpace(name)
	return e.byID(model.Node{
		ID:         model.TagID(name),
		Label:      model.LabelTag,
		Properties: model.Properties{{Key: "name", Value: model.StringValue(name)}},
	})
}

// byID creates n unless a node with the same id exists.
func (e *Engine) byID(n model.Node) (model.Node, string) {
	if existing, ok := e.State.Node(n.ID); ok {
		return existing, ""
	}
	e.State.AddNode(n)
	return n, n.Cypher()
}

// Relationship is always emitted. The log does not coalesce duplicates;
// importing it into a graph store does.
func (e *Engine) Relationship(sourceID, targetID, relType string, props model.Properties) (model.Relationship, string) {
	r := model.Relationship{
		SourceID:   sourceID,
		TargetID:   targetID,
		Type:       model.NormalizeRelType(relType),
		Properties: props,
	}
	e.State.AddRelationship(r)
	return r, r.Cypher()
}
