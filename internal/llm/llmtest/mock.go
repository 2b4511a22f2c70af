// Package llmtest provides a scripted LLM client for tests.
package llmtest

import (
	"context"
	"sync"
)

// MockClient returns queued responses in order, then Response. Err, when
// set, is returned for every call. Prompts records what was asked.
type MockClient struct {
	mu       sync.Mutex
	Response string
	Queue    []string
	Err      error
	Prompts  []string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Queue) > 0 {
		resp := m.Queue[0]
		m.Queue = m.Queue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// Calls reports how many prompts were sent.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
