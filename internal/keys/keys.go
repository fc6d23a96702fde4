package keys

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SynergyKey normalizes a synergy tag for comparison: trimmed and
// lower-cased. An empty result means "no tag".
func SynergyKey(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9_]+`)
	underscore = regexp.MustCompile(`_+`)
)

// CardSlug turns a card name into a stable identifier: accents stripped,
// lower-cased, anything outside [a-z0-9_] replaced with underscores.
func CardSlug(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "_")
	s = underscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// MatchupKey produces a canonical key for a pair of match participants so
// concurrent requests from either side map to the same key.
func MatchupKey(joinCode string, names []string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		s := strings.TrimSpace(n)
		if s == "" {
			continue
		}
		parts = append(parts, strings.ToLower(strings.ReplaceAll(s, " ", "_")))
	}
	sort.Strings(parts)
	return joinCode + ":" + strings.Join(parts, "_")
}
