package dedupe

import (
	"strings"

	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/core/model"
)

// Merge turns an analysis into the statements that are new to State.
// Each document becomes a Thought linked to its category, first date, tags
// and mentioned concepts. Relation candidates follow, resolved by concept
// name. Candidates that cannot be resolved are skipped.
func (e *Engine) Merge(analysis model.Analysis) model.Delta {
	var delta model.Delta
	for _, doc := range analysis.Documents {
		e.mergeDocument(&delta, doc)
	}
	for _, rc := range analysis.Relations {
		e.mergeRelation(&delta, rc)
	}
	e.Logger.Debug("merge finished",
		zap.Int("new_nodes", len(delta.Nodes)),
		zap.Int("new_relationships", len(delta.Relationships)),
		zap.Int("total_queries", len(delta.Statements)))
	return delta
}

func (e *Engine) mergeDocument(delta *model.Delta, doc model.DocumentCandidate) {
	title := doc.Document.Title
	if title == "" {
		title = doc.Document.Name
	}
	thought, stmt := e.Thought(title, doc.Document.Content, doc.Document.Path)
	delta.AddNode(thought, stmt)

	category := strings.TrimSpace(doc.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	node, stmt := e.Category(category)
	e.link(delta, thought.ID, model.RelBelongsTo, nil, node, stmt)

	for _, d := range doc.Dates {
		if strings.TrimSpace(d) == "" {
			continue
		}
		node, stmt := e.Date(d)
		e.link(delta, thought.ID, model.RelCreatedOn, nil, node, stmt)
		break
	}

	tags := 0
	for _, tag := range doc.Tags {
		if e.MaxTags > 0 && tags >= e.MaxTags {
			break
		}
		if strings.TrimSpace(tag) == "" {
			continue
		}
		node, stmt := e.Tag(tag)
		e.link(delta, thought.ID, model.RelHasTag, nil, node, stmt)
		tags++
	}

	for _, c := range doc.Concepts {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		confidence := DefaultMentionConfidence
		if c.Confidence != nil {
			confidence = *c.Confidence
		}
		props := model.Properties{{Key: "confidence", Value: model.FloatValue(confidence)}}
		node, stmt = e.Concept(c.Name, c.Type)
		e.link(delta, thought.ID, model.RelMentions, props, node, stmt)
	}
}

// link records target when it is new and always records the relationship
// from sourceID to it.
func (e *Engine) link(delta *model.Delta, sourceID, relType string, props model.Properties, target model.Node, stmt string) {
	if stmt != "" {
		delta.AddNode(target, stmt)
	}
	rel, relStmt := e.Relationship(sourceID, target.ID, relType, props)
	delta.AddRelationship(rel, relStmt)
}

func (e *Engine) mergeRelation(delta *model.Delta, rc model.RelationCandidate) {
	if strings.TrimSpace(rc.Source) == "" || strings.TrimSpace(rc.Target) == "" {
		e.Logger.Debug("skipping relation without endpoints", zap.String("source", rc.Source), zap.String("target", rc.Target))
		return
	}
	sourceID, ok := e.LookupConcept(rc.Source)
	if !ok {
		e.Logger.Debug("skipping relation with unknown source", zap.String("source", rc.Source))
		return
	}
	targetID, ok := e.LookupConcept(rc.Target)
	if !ok {
		e.Logger.Debug("skipping relation with unknown target", zap.String("target", rc.Target))
		return
	}
	props := model.Properties{{Key: "reason", Value: model.StringValue(rc.Reason)}}
	rel, stmt := e.Relationship(sourceID, targetID, rc.Type, props)
	delta.AddRelationship(rel, stmt)
}
