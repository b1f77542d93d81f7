package analysis

import (
	"strings"
	"unicode"

	"github.com/corentings/chess/v2"
)

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func nameTokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchScore rates how well header names the player: 3 exact, 2 substring,
// 1 shared token, 0 no match.
func matchScore(header, player string) int {
	h, p := normalizeName(header), normalizeName(player)
	if h == "" || p == "" {
		return 0
	}
	if h == p {
		return 3
	}
	if (len(p) >= 3 && strings.Contains(h, p)) || (len(h) >= 3 && strings.Contains(p, h)) {
		return 2
	}
	for _, a := range nameTokens(header) {
		if len(a) < 3 {
			continue
		}
		for _, b := range nameTokens(player) {
			if a == b {
				return 1
			}
		}
	}
	return 0
}

// matchPlayer picks the side of the game the player had. only restricts the
// choice to one colour unless it is chess.NoColor.
func matchPlayer(white, black, player string, only chess.Color) (chess.Color, bool) {
	ws, bs := matchScore(white, player), matchScore(black, player)
	switch only {
	case chess.White:
		bs = 0
	case chess.Black:
		ws = 0
	}
	switch {
	case ws == 0 && bs == 0:
		return chess.NoColor, false
	case ws >= bs:
		return chess.White, true
	}
	return chess.Black, true
}

// ColorName is "white" or "black".
func ColorName(c chess.Color) string {
	if c == chess.Black {
		return "black"
	}
	return "white"
}

// ParseColor reads "white"/"w" or "black"/"b"; anything else is NoColor.
func ParseColor(s string) chess.Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return chess.White
	case "black", "b":
		return chess.Black
	}
	return chess.NoColor
}
