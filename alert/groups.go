package alert

import "strings"

// NormalizeGroups lower-cases and trims names, dropping the empty ones.
func NormalizeGroups(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Excluded reports the first of groups that appears in excluded.
// The comparison ignores case and surrounding white space.
func Excluded(groups, excluded []string) (string, bool) {
	ex := NormalizeGroups(excluded)
	if len(ex) == 0 {
		return "", false
	}
	set := make(map[string]struct{}, len(ex))
	for _, e := range ex {
		set[e] = struct{}{}
	}
	for _, g := range groups {
		if _, ok := set[strings.ToLower(strings.TrimSpace(g))]; ok {
			return g, true
		}
	}
	return "", false
}
