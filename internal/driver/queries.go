package driver

import (
	"fmt"
	"regexp"
)

// Labels and relationship types cannot be query parameters, so they are
// spliced into the query text and must be plain identifiers.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	indexQueryTemplate = `CREATE INDEX ON :%s(id);`

	mergeNodeTemplate = `
		MERGE (n:%s {id: $id})
		SET n += $props
		RETURN n.id AS id
	`

	mergeRelationshipTemplate = `
		MATCH (a {id: $source_id})
		MATCH (b {id: $target_id})
		MERGE (a)-[r:%s]->(b)
		SET r += $props
		RETURN type(r) AS type
	`
)

// ErrInvalidIdentifier is returned for labels or types that are not safe to
// splice into a query.
type ErrInvalidIdentifier struct {
	Name string
}

func (e ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.Name)
}

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return ErrInvalidIdentifier{Name: name}
	}
	return nil
}

func IndexQuery(label string) (string, error) {
	if err := checkIdent(label); err != nil {
		return "", err
	}
	return fmt.Sprintf(indexQueryTemplate, label), nil
}

func MergeNodeQuery(label string) (string, error) {
	if err := checkIdent(label); err != nil {
		return "", err
	}
	return fmt.Sprintf(mergeNodeTemplate, label), nil
}

func MergeRelationshipQuery(relType string) (string, error) {
	if err := checkIdent(relType); err != nil {
		return "", err
	}
	return fmt.Sprintf(mergeRelationshipTemplate, relType), nil
}
