package taskquery

import (
	"regexp"
	"strings"
)

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Decompress turns a compact display name such as "RaniKawale" into
// "Rani Kawale" by inserting a space wherever a lowercase letter is directly
// followed by an uppercase one. Names with adjacent capitals or non-letter
// boundaries ("JSONParser", "r2D2") are not split correctly.
func Decompress(s string) string {
	return strings.TrimSpace(camelBoundary.ReplaceAllString(s, "$1 $2"))
}

// SplitCompact splits a comma separated list of compact names, decompresses
// each entry and drops blanks and duplicates. Input order is kept. Blank
// input yields nil; input made only of separators yields an empty, non-nil
// slice.
func SplitCompact(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		name := Decompress(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
