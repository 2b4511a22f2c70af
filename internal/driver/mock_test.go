package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]any
}

type MockDriver struct {
	Queries    []executedQuery
	Indexed    []string
	MockResult neo4j.EagerResult
	Err        error
	// FailOn makes ExecuteQuery fail once this many queries have succeeded.
	FailOn int
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	if m.Err != nil && len(m.Queries) >= m.FailOn {
		return neo4j.EagerResult{}, m.Err
	}
	m.Queries = append(m.Queries, executedQuery{Query: query, Params: params})
	return m.MockResult, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context, labels []string) error {
	m.Indexed = append(m.Indexed, labels...)
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
