package model

// ConceptDuplicate is the LLM verdict on whether a new concept already exists.
type ConceptDuplicate struct {
	IsDuplicate    bool   `json:"is_duplicate"`
	MatchedConcept string `json:"matched_concept"`
	Reason         string `json:"reason"`
}

// CategoryDecision is the LLM verdict on which category a document belongs to.
type CategoryDecision struct {
	Category   string  `json:"category"`
	IsNew      bool    `json:"is_new"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}
