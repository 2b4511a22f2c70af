package loader

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agenthands/kgraph/internal/core/extraction"
	"github.com/agenthands/kgraph/internal/core/model"
)

var (
	frontMatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?`)
	headingPattern     = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	mdLinkPattern      = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	urlPattern         = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")

	// applied in order to turn markdown into plain text
	plainTextRules = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile("(?s)```.*?```"), ""},
		{regexp.MustCompile("`[^`]+`"), ""},
		{regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`), ""},
		{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
		{regexp.MustCompile(`(?m)^#+\s*`), ""},
		{regexp.MustCompile(`\*{1,2}([^*]+)\*{1,2}`), "$1"},
		{regexp.MustCompile(`_{1,2}([^_]+)_{1,2}`), "$1"},
		{regexp.MustCompile(`(?m)^\s*[-*+]\s+`), ""},
		{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},
	}
)

func parseMarkdown(data []byte, doc *model.Document) error {
	raw := string(data)
	body := raw
	frontMatter := map[string]any{}
	if m := frontMatterPattern.FindStringSubmatchIndex(raw); m != nil {
		// broken front matter is ignored, the body still parses
		if err := yaml.Unmarshal([]byte(raw[m[2]:m[3]]), &frontMatter); err != nil || frontMatter == nil {
			frontMatter = map[string]any{}
		}
		body = raw[m[1]:]
	}

	if title, ok := frontMatter["title"]; ok && title != nil {
		doc.Title = strings.TrimSpace(fmt.Sprint(title))
	} else if m := headingPattern.FindStringSubmatch(body); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}

	doc.Tags = extraction.MergeTags(frontMatterTags(frontMatter["tags"]), extraction.ExtractTags(body))
	doc.Links = links(body)
	doc.Content = plainText(body)
	doc.Metadata = frontMatter
	return nil
}

func frontMatterTags(v any) []string {
	switch tags := v.(type) {
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			out = append(out, fmt.Sprint(t))
		}
		return out
	case string:
		return strings.Split(tags, ",")
	default:
		return nil
	}
}

func links(body string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(l string) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, m := range mdLinkPattern.FindAllStringSubmatch(body, -1) {
		add(m[2])
	}
	for _, u := range urlPattern.FindAllString(body, -1) {
		add(strings.TrimRight(u, ")"))
	}
	return out
}

func plainText(body string) string {
	for _, rule := range plainTextRules {
		body = rule.re.ReplaceAllString(body, rule.repl)
	}
	return strings.TrimSpace(body)
}
