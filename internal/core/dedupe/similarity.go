package dedupe

import "strings"

// IsSimilar reports whether a and b are equal ignoring case, or one contains
// the other. Blank names are never similar.
func IsSimilar(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// FindSimilar returns the entries of existing that are similar to name, in
// their original order.
func FindSimilar(name string, existing []string) []string {
	var out []string
	for _, candidate := range existing {
		if IsSimilar(name, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
