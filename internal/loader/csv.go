package loader

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/agenthands/kgraph/internal/core/model"
)

const maxCSVRows = 100

// parseCSV renders the header and up to maxCSVRows rows as "a | b | c" lines.
func parseCSV(data []byte, doc *model.Document) error {
	r := csv.NewReader(strings.NewReader(decode(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	headers, rows := records[0], records[1:]
	if len(headers) > 0 {
		doc.Title = strings.TrimSpace(headers[0])
	}

	lines := []string{strings.Join(headers, " | "), strings.Repeat("-", 40)}
	for i, row := range rows {
		if i == maxCSVRows {
			lines = append(lines, fmt.Sprintf("... (%d more rows)", len(rows)-maxCSVRows))
			break
		}
		lines = append(lines, strings.Join(row, " | "))
	}
	doc.Content = strings.Join(lines, "\n")
	doc.Metadata = map[string]any{
		"row_count":    len(rows),
		"column_count": len(headers),
		"headers":      headers,
	}
	return nil
}
