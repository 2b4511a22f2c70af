package extraction

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

var (
	isoDatePattern    = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDatePattern  = regexp.MustCompile(`\d{4}/\d{2}/\d{2}`)
	koreanDatePattern = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)

	inlineTagPattern = regexp.MustCompile(`(?:^|\s)#([a-zA-Z가-힣][a-zA-Z0-9가-힣_-]*)`)
)

type dateMatch struct {
	pos  int
	date string
}

// ExtractDates finds dates in content, normalised to YYYY-MM-DD, in order of
// appearance without duplicates. Impossible dates are dropped.
func ExtractDates(content string) []string {
	var matches []dateMatch
	for _, re := range []*regexp.Regexp{isoDatePattern, slashDatePattern} {
		for _, loc := range re.FindAllStringIndex(content, -1) {
			if d, ok := NormalizeDate(content[loc[0]:loc[1]]); ok {
				matches = append(matches, dateMatch{pos: loc[0], date: d})
			}
		}
	}
	for _, sub := range koreanDatePattern.FindAllStringSubmatchIndex(content, -1) {
		month, _ := strconv.Atoi(content[sub[4]:sub[5]])
		day, _ := strconv.Atoi(content[sub[6]:sub[7]])
		raw := fmt.Sprintf("%s-%02d-%02d", content[sub[2]:sub[3]], month, day)
		if d, ok := NormalizeDate(raw); ok {
			matches = append(matches, dateMatch{pos: sub[0], date: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	seen := make(map[string]bool)
	var dates []string
	for _, m := range matches {
		if !seen[m.date] {
			seen[m.date] = true
			dates = append(dates, m.date)
		}
	}
	return dates
}

// NormalizeDate parses any common date spelling into YYYY-MM-DD.
func NormalizeDate(v any) (string, bool) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(dateLayout), true
	case string:
		d = strings.TrimSpace(d)
		if d == "" {
			return "", false
		}
		t, err := dateparse.ParseAny(d)
		if err != nil {
			return "", false
		}
		return t.Format(dateLayout), true
	default:
		return "", false
	}
}

// ExtractTags returns inline #tags from lines that are not headings, in
// order of appearance without duplicates.
func ExtractTags(content string) []string {
	var tags []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, m := range inlineTagPattern.FindAllStringSubmatch(line, -1) {
			tags = append(tags, m[1])
		}
	}
	return MergeTags(tags)
}

// MergeTags concatenates tag lists, dropping blanks and case-insensitive
// repeats. The first spelling wins.
func MergeTags(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, tag := range list {
			tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, tag)
		}
	}
	return out
}
