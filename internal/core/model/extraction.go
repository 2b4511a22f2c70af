package model

const (
	// DefaultCategory is used when no category could be decided.
	DefaultCategory = "Uncategorized"
	// DefaultConceptType is used when extraction reports no type.
	DefaultConceptType = "idea"
)

// Document is a parsed input file.
type Document struct {
	Path     string         `json:"path"`
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Tags     []string       `json:"tags,omitempty"`
	Links    []string       `json:"links,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ConceptCandidate is a concept proposed by extraction. A nil Confidence
// means none was reported.
type ConceptCandidate struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// ConceptExtraction is the JSON shape returned by the concept extraction prompt.
type ConceptExtraction struct {
	Concepts []ConceptCandidate `json:"concepts"`
	Category string             `json:"category"`
	Summary  string             `json:"summary"`
}

// DocumentCandidate is everything proposed for one document.
type DocumentCandidate struct {
	Document Document           `json:"document"`
	Concepts []ConceptCandidate `json:"concepts"`
	Category string             `json:"category"`
	Summary  string             `json:"summary"`
	Dates    []string           `json:"dates"`
	Tags     []string           `json:"tags"`
}

// CandidateBatch is the research stage output.
type CandidateBatch struct {
	Documents []DocumentCandidate `json:"documents"`
}

// Concepts flattens the candidates of every document, in document order.
func (b CandidateBatch) Concepts() []ConceptCandidate {
	var out []ConceptCandidate
	for _, d := range b.Documents {
		out = append(out, d.Concepts...)
	}
	return out
}

// RelationCandidate names its endpoints by concept name, not id.
type RelationCandidate struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Type       string  `json:"type"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence,omitempty"`
}

// RelationExtraction is the JSON shape returned by the relationship prompts.
type RelationExtraction struct {
	Relationships []RelationCandidate `json:"relationships"`
}

// Analysis is the analyze stage output: documents with resolved categories
// plus concept-to-concept relation candidates.
type Analysis struct {
	Documents []DocumentCandidate `json:"documents"`
	Relations []RelationCandidate `json:"relations"`
}
