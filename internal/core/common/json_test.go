package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"plain", `{"name": "a", "items": ["x"]}`},
		{"prose around", `Sure! Here it is: {"name": "a", "items": ["x"]} Hope this helps.`},
		{"fenced", "```json\n{\"name\": \"a\", \"items\": [\"x\"]}\n```"},
		{"fenced no hint", "Result:\n```\n{\"name\": \"a\", \"items\": [\"x\"]}\n```\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON[sample](tt.response)
			require.NoError(t, err)
			assert.Equal(t, sample{Name: "a", Items: []string{"x"}}, got)
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON[sample]("no json here")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ParseJSON[sample](`{"name": 1}`)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "그래", Truncate("그래프", 2))
	assert.Equal(t, "ab", Truncate("ab", 5))
	assert.Equal(t, "ab", Truncate("ab", 0))
}
