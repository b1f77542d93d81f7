package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// ErrBadSAN is wrapped by Decode failures.
var ErrBadSAN = errors.New("board: cannot decode move")

// SanitizeSAN strips annotation glyphs, check markers and en-passant suffixes
// and normalises zero-castling and "=-less" promotions.
func SanitizeSAN(san string) string {
	s := strings.TrimSpace(san)
	s = strings.TrimSuffix(s, "e.p.")
	s = strings.TrimSuffix(s, "ep")
	s = strings.TrimRight(s, "!?+# ")
	switch s {
	case "0-0", "O-O", "o-o":
		return "O-O"
	case "0-0-0", "O-O-O", "o-o-o":
		return "O-O-O"
	}
	if n := len(s); n >= 3 && strings.ContainsRune("QRBN", rune(s[n-1])) && s[n-2] >= '1' && s[n-2] <= '8' {
		if s[n-2] == '1' || s[n-2] == '8' {
			s = s[:n-1] + "=" + s[n-1:]
		}
	}
	return s
}

// Decode finds the legal move named by san. It tries the library decoder,
// then a comparison against every legal move's canonical SAN, then a loose
// match on piece, destination and promotion that tolerates missing or
// superfluous disambiguation.
func (p Position) Decode(san string) (*chess.Move, error) {
	clean := SanitizeSAN(san)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadSAN)
	}
	if m, err := (chess.AlgebraicNotation{}).Decode(p.pos, clean); err == nil && m != nil {
		return m, nil
	}
	moves := p.pos.ValidMoves()
	for i := range moves {
		m := &moves[i]
		if SanitizeSAN(chess.AlgebraicNotation{}.Encode(p.pos, m)) == clean {
			return m, nil
		}
	}
	if m := p.looseMatch(clean, moves); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrBadSAN, san, p.FEN())
}

func (p Position) looseMatch(clean string, moves []chess.Move) *chess.Move {
	role := Pawn
	body := clean
	if strings.ContainsRune("KQRBN", rune(body[0])) {
		role = map[byte]Role{'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight}[body[0]]
		body = body[1:]
	}
	promo := NoRole
	if i := strings.IndexByte(body, '='); i >= 0 && i+1 < len(body) {
		promo = map[byte]Role{'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight}[body[i+1]]
		body = body[:i]
	}
	body = strings.ReplaceAll(body, "x", "")
	body = strings.ReplaceAll(body, "-", "")
	if len(body) < 2 {
		return nil
	}
	to := ParseSquare(body[len(body)-2:])
	if to < 0 {
		return nil
	}
	hint := body[:len(body)-2]

	g := p.Grid()
	var found *chess.Move
	for i := range moves {
		m := &moves[i]
		from := int(m.S1())
		if int(m.S2()) != to || g[from].Role != role || roleOf(m.Promo()) != promo {
			continue
		}
		if !matchesHint(from, hint) {
			continue
		}
		if found != nil {
			return nil
		}
		found = m
	}
	return found
}

// matchesHint checks a disambiguation prefix such as "b", "1" or "b1".
func matchesHint(from int, hint string) bool {
	for _, c := range hint {
		switch {
		case c >= 'a' && c <= 'h':
			if FileOf(from) != int(c-'a') {
				return false
			}
		case c >= '1' && c <= '8':
			if RankOf(from) != int(c-'1') {
				return false
			}
		}
	}
	return true
}
