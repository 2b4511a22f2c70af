package loader

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"

	"github.com/agenthands/kgraph/internal/core/common"
	"github.com/agenthands/kgraph/internal/core/model"
)

const maxTextTitle = 100

func parseText(data []byte, doc *model.Document) error {
	content := decode(data)
	doc.Content = content
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			doc.Title = common.Truncate(line, maxTextTitle)
			break
		}
	}
	doc.Metadata = map[string]any{
		"line_count": strings.Count(content, "\n") + 1,
		"char_count": utf8.RuneCountInString(content),
		"word_count": len(strings.Fields(content)),
	}
	return nil
}

// decode returns data as UTF-8. Input that is not valid UTF-8 is tried as
// EUC-KR (CP949) before invalid bytes are dropped.
func decode(data []byte) string {
	data = []byte(strings.TrimPrefix(string(data), "\uFEFF"))
	if utf8.Valid(data) {
		return string(data)
	}
	if out, err := korean.EUCKR.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return string(out)
	}
	return strings.ToValidUTF8(string(data), "")
}
