// Package eval reads engine evaluations embedded in PGN comments.
package eval

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
)

// MateScore is the magnitude of a mate-in-0 evaluation. Mate in N is
// MateScore - N*MateStep so shorter mates compare as more extreme.
const (
	MateScore = 10000
	MateStep  = 10
)

// Score is a White-relative evaluation. The zero value is "unknown".
type Score struct {
	CP    int
	Mate  int // signed moves to mate, 0 when the score is not a mate score
	Known bool
}

// Known scores built from centipawns or mate distances.
func CP(cp int) Score { return Score{CP: cp, Known: true} }

func Mate(n int) Score { return Score{CP: mateToCP(n), Mate: n, Known: true} }

func (s Score) IsMate() bool { return s.Known && s.Mate != 0 }

// ForPlayer returns the score from color's point of view.
func (s Score) ForPlayer(color chess.Color) (int, bool) {
	if !s.Known {
		return 0, false
	}
	return ForPlayer(s.CP, color), true
}

// ForPlayer reorients a White-relative value to color's perspective.
func ForPlayer(cp int, color chess.Color) int {
	if color == chess.Black {
		return -cp
	}
	return cp
}

func mateToCP(n int) int {
	switch {
	case n > 0:
		return MateScore - n*MateStep
	case n < 0:
		return -(MateScore + n*MateStep)
	default:
		return 0
	}
}

var (
	evalTagRe   = regexp.MustCompile(`\[%eval\s+([^\],\s]+)`)
	leadScoreRe = regexp.MustCompile(`^\s*\(?([+-]\d+(?:\.\d+)?|[+-]?#-?\d+|[+-]?M\d+)(?:/\d+)?(?:\s|\)|$)`)
	// An unsigned decimal is a score only on its own or with a depth.
	bareScoreRe = regexp.MustCompile(`^\s*\(?(\d+\.\d+)(?:/\d+(?:\s|\)|$)|\)?\s*$)`)
)

// FromComments returns the first recognised evaluation in comments.
func FromComments(comments []string) Score {
	for _, c := range comments {
		if s := Parse(c); s.Known {
			return s
		}
	}
	return Score{}
}

// Parse reads one comment. Supported forms are lichess "[%eval 0.35]" /
// "[%eval #-3]" tags and engine-style leading scores such as "+0.35/18",
// "-1.20", "#4" or "-M3". An unsigned "0.35" counts only when it is the
// whole comment or carries a depth ("0.35/20").
func Parse(comment string) Score {
	if m := evalTagRe.FindStringSubmatch(comment); m != nil {
		return parseValue(m[1])
	}
	if m := leadScoreRe.FindStringSubmatch(comment); m != nil {
		return parseValue(m[1])
	}
	if m := bareScoreRe.FindStringSubmatch(comment); m != nil {
		return parseValue(m[1])
	}
	return Score{}
}

func parseValue(v string) Score {
	v = strings.TrimSpace(v)
	neg := false
	switch {
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	case strings.HasPrefix(v, "-") && len(v) > 1 && (v[1] == '#' || v[1] == 'M'):
		neg = true
		v = v[1:]
	}
	if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "M") {
		n, err := strconv.Atoi(v[1:])
		if err != nil {
			return Score{}
		}
		if neg {
			n = -n
		}
		if n == 0 {
			return Score{}
		}
		return Mate(n)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Score{}
	}
	if f < 0 {
		return CP(int(f*100 - 0.5))
	}
	return CP(int(f*100 + 0.5))
}
