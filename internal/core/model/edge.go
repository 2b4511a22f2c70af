package model

import (
	"strings"
	"unicode"
)

const (
	RelBelongsTo  = "BELONGS_TO"  // Thought -> Category
	RelMentions   = "MENTIONS"    // Thought -> Concept
	RelRelatedTo  = "RELATED_TO"  // Concept <-> Concept
	RelCreatedOn  = "CREATED_ON"  // Thought -> Date
	RelEvolvedTo  = "EVOLVED_TO"  // Concept -> Concept
	RelHasTag     = "HAS_TAG"     // Thought -> Tag
	RelSupports   = "SUPPORTS"    // Concept -> Concept
	RelContradict = "CONTRADICTS" // Concept -> Concept
)

// Relationship is a directed edge between two node ids. The type set is open.
type Relationship struct {
	SourceID   string     `json:"source_id"`
	TargetID   string     `json:"target_id"`
	Type       string     `json:"rel_type"`
	Properties Properties `json:"properties"`
}

// Cypher renders the relationship upsert. The property clause is left out
// entirely when there are no properties.
func (r Relationship) Cypher() string {
	var b strings.Builder
	b.WriteString("MATCH (a {id: ")
	b.WriteString(Quote(r.SourceID))
	b.WriteString("}), (b {id: ")
	b.WriteString(Quote(r.TargetID))
	b.WriteString("}) ")
	b.WriteString(UpsertKeyword)
	b.WriteString(" (a)-[:")
	b.WriteString(r.Type)
	if len(r.Properties) > 0 {
		b.WriteString(" {")
		b.WriteString(r.Properties.block())
		b.WriteString("}")
	}
	b.WriteString("]->(b)")
	return b.String()
}

// Equal reports whether both relationships carry the same endpoints, type and
// properties.
func (r Relationship) Equal(other Relationship) bool {
	return r.SourceID == other.SourceID &&
		r.TargetID == other.TargetID &&
		r.Type == other.Type &&
		r.Properties.Equal(other.Properties)
}

// NormalizeRelType upper-cases t and replaces anything outside [A-Z0-9_] so
// the type stays a bare identifier in the log. Empty input yields RELATED_TO.
func NormalizeRelType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return RelRelatedTo
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(t) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}
