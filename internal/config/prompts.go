package config

// Prompt templates are fmt format strings; the %s verbs are documented per
// template.

// DefaultConceptsPrompt takes the document content.
const DefaultConceptsPrompt = `Analyze the following document and extract its key concepts.

<DOCUMENT>
%s
</DOCUMENT>

Instructions:
1. List the important concepts (ideas, terms, technologies, people, places).
2. Give each concept a type: idea, term, technology, person, place or other.
3. Give each concept a confidence between 0 and 1.
4. Suggest one short category for the whole document.
5. Summarize the document in one or two sentences.

Respond with JSON only:
{
  "concepts": [{"name": "Graph Theory", "type": "idea", "confidence": 0.9}],
  "category": "Mathematics",
  "summary": "..."
}
`

// DefaultCategoryPrompt takes the existing categories, the document title,
// the document summary and the suggested category.
const DefaultCategoryPrompt = `Choose a category for a document.

Existing categories: %s

Document title: %s
Document summary: %s
Suggested category: %s

Prefer an existing category when it fits. Only propose a new one when none fit.

Respond with JSON only:
{"category": "...", "is_new": false, "confidence": 0.8, "reason": "..."}
`

// DefaultConceptDuplicatePrompt takes the new concept and the similar
// existing concepts.
const DefaultConceptDuplicatePrompt = `Decide whether a new concept is the same as one of the existing concepts,
only worded differently.

New concept: %s
Existing concepts: %s

Respond with JSON only:
{"is_duplicate": true, "matched_concept": "<existing concept name or empty>", "reason": "..."}
`

// DefaultCrossRelationsPrompt takes the new concepts and the existing concepts.
const DefaultCrossRelationsPrompt = `Find meaningful relationships between new concepts and existing concepts.

New concepts: %s
Existing concepts: %s

Allowed relationship types: RELATED_TO, EVOLVED_TO, SUPPORTS, CONTRADICTS.
Only include relationships you are confident about.

Respond with JSON only:
{"relationships": [{"source": "...", "target": "...", "type": "RELATED_TO", "reason": "..."}]}
`

// DefaultInternalRelationsPrompt takes the concepts of one run.
const DefaultInternalRelationsPrompt = `Find meaningful relationships among the following concepts.

Concepts: %s

Allowed relationship types: RELATED_TO, EVOLVED_TO, SUPPORTS, CONTRADICTS.
Only include relationships you are confident about.

Respond with JSON only:
{"relationships": [{"source": "...", "target": "...", "type": "RELATED_TO", "reason": "..."}]}
`
