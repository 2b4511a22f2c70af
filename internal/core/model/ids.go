package model

import (
	"strings"
	"time"
	"unicode"
)

// MaxNameLength bounds the sanitized name segment of generated ids.
const MaxNameLength = 30

const thoughtStampLayout = "20060102150405"

// SanitizeName replaces every rune outside ASCII letters, digits and Hangul
// syllables with '_' and truncates to max runes (max <= 0 disables the bound).
func SanitizeName(name string, max int) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if max > 0 && n >= max {
			break
		}
		if isIDRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		n++
	}
	return b.String()
}

func isIDRune(r rune) bool {
	if r < unicode.MaxASCII {
		return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
	}
	return r >= 0xAC00 && r <= 0xD7A3
}

func ConceptID(name string) string {
	return "concept_" + SanitizeName(name, MaxNameLength)
}

func CategoryID(name string) string {
	return "category_" + SanitizeName(name, MaxNameLength)
}

// TagID folds case: #Go and #go are the same tag.
func TagID(name string) string {
	return "tag_" + SanitizeName(strings.ToLower(name), MaxNameLength)
}

// DateID strips separators from the date itself: 2024-01-15 -> date_20240115.
func DateID(date string) string {
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || r == '/' || r == '.' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, date)
	return "date_" + SanitizeName(stripped, MaxNameLength)
}

// ThoughtID embeds the generation time to the second, so thoughts are never
// merged across runs. Two thoughts with the same title in the same second
// collide.
func ThoughtID(title string, at time.Time) string {
	return "thought_" + SanitizeName(title, MaxNameLength) + "_" + at.Format(thoughtStampLayout)
}
