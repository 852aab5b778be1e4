package directory

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter narrows items to those whose name, subtitle or description match
// query. Matching ignores case and accents; words within a small edit
// distance of the query also match so "alfareria" finds "Alfarería".
func Filter(items []TaggedItem, query string) []TaggedItem {
	q := fold(query)
	if q == "" {
		return items
	}
	maxDist := typoBudget(q)
	out := make([]TaggedItem, 0, len(items))
	for _, it := range items {
		if matches(it, q, maxDist) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it TaggedItem, q string, maxDist int) bool {
	for _, field := range []string{it.Name, it.Subtitle(), it.Description} {
		f := fold(field)
		if f == "" {
			continue
		}
		if strings.Contains(f, q) {
			return true
		}
		if maxDist == 0 {
			continue
		}
		for _, word := range strings.FieldsFunc(f, notWordRune) {
			if levenshtein.ComputeDistance(word, q) <= maxDist {
				return true
			}
		}
	}
	return false
}

// typoBudget: short queries must match exactly.
func typoBudget(q string) int {
	n := len([]rune(q))
	switch {
	case n < 4:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}

func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
