package report

import (
	"slices"
	"strings"
	"unicode"

	"github.com/vytor/chessinsight/internal/themes"
)

var openingCuts = []string{",", ":", "(", " - ", " / "}

// NormalizeOpening reduces an opening name to a bucket key: commentary after
// the first separator is dropped, case folded and punctuation collapsed.
// Normalising a normalised name returns it unchanged.
func NormalizeOpening(name string) string {
	for _, sep := range openingCuts {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// Signature joins the sorted unique tag names with "+".
func Signature(tags []themes.Tag) string {
	seen := map[themes.Tag]bool{}
	var names []string
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			names = append(names, t.String())
		}
	}
	if len(names) == 0 {
		return "untagged"
	}
	slices.Sort(names)
	return strings.Join(names, "+")
}
