package loader

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/kgraph/internal/core/model"
)

// parseJSON flattens the value into indented "key: value" lines. Invalid
// JSON is kept as plain text.
func parseJSON(data []byte, doc *model.Document) error {
	raw := decode(data)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		doc.Content = raw
		doc.Metadata = map[string]any{"error": err.Error()}
		return nil
	}

	switch t := v.(type) {
	case map[string]any:
		for _, key := range []string{"title", "name"} {
			if s, ok := t[key].(string); ok && s != "" {
				doc.Title = s
				break
			}
		}
		doc.Metadata = map[string]any{"keys": sortedKeys(t)}
		if d, ok := t["date"]; ok {
			doc.Metadata["date"] = d
		}
	case []any:
		doc.Metadata = map[string]any{"item_count": len(t)}
	}

	var lines []string
	flatten(v, 0, &lines)
	doc.Content = strings.Join(lines, "\n")
	return nil
}

func flatten(v any, depth int, lines *[]string) {
	indent := strings.Repeat("  ", depth)
	switch t := v.(type) {
	case map[string]any:
		for _, key := range sortedKeys(t) {
			switch child := t[key].(type) {
			case map[string]any, []any:
				*lines = append(*lines, indent+key+":")
				flatten(child, depth+1, lines)
			default:
				*lines = append(*lines, fmt.Sprintf("%s%s: %v", indent, key, child))
			}
		}
	case []any:
		for i, item := range t {
			switch item.(type) {
			case map[string]any, []any:
				*lines = append(*lines, fmt.Sprintf("%s- item %d:", indent, i+1))
				flatten(item, depth+1, lines)
			default:
				*lines = append(*lines, fmt.Sprintf("%s- %v", indent, item))
			}
		}
	default:
		*lines = append(*lines, fmt.Sprintf("%s%v", indent, t))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
