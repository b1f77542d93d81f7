package pgn

import (
	"strconv"
	"strings"
	"unicode"
)

var results = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}

// ParseMoveText builds a move tree from PGN movetext. Moves are stored as
// written; no legality checks happen here. The game result token, if any, is
// returned alongside the tree.
func ParseMoveText(s string) (*Tree, string) {
	t := NewTree()
	p := &moveTextParser{src: []rune(s), tree: t, cur: t.Root()}
	p.run()
	return t, p.result
}

type moveTextParser struct {
	src    []rune
	pos    int
	tree   *Tree
	cur    int
	stack  []int
	result string
	// fresh is set right after "(" until the variation's first move.
	fresh bool
}

func (p *moveTextParser) run() {
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		switch {
		case unicode.IsSpace(r):
			p.pos++
		case r == '{':
			p.comment(p.until('}'))
		case r == ';':
			p.comment(p.until('\n'))
		case r == '%' && (p.pos == 0 || p.src[p.pos-1] == '\n'):
			p.until('\n')
		case r == '(':
			p.pos++
			p.stack = append(p.stack, p.cur)
			p.cur = p.tree.Node(p.cur).Parent
			if p.cur < 0 {
				p.cur = p.tree.Root()
			}
			p.fresh = true
		case r == ')':
			p.pos++
			if n := len(p.stack); n > 0 {
				p.cur = p.stack[n-1]
				p.stack = p.stack[:n-1]
			}
			p.fresh = false
		case r == '$':
			p.pos++
			tok := p.word()
			if n, err := strconv.Atoi(tok); err == nil && p.cur != p.tree.Root() {
				p.addNAG(n)
			}
		default:
			p.token(p.word())
		}
	}
}

// until returns the text up to the closing rune and skips past it.
func (p *moveTextParser) until(end rune) string {
	start := p.pos + 1
	i := start
	for i < len(p.src) && p.src[i] != end {
		i++
	}
	p.pos = i + 1
	return string(p.src[start:i])
}

func (p *moveTextParser) word() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if unicode.IsSpace(r) || strings.ContainsRune("{}();$", r) {
			break
		}
		p.pos++
	}
	if p.pos == start {
		p.pos++
		return string(p.src[start:p.pos])
	}
	return string(p.src[start:p.pos])
}

func (p *moveTextParser) comment(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	// A comment opening a variation describes the branch point, not a move.
	if p.fresh {
		return
	}
	n := p.tree.Node(p.cur)
	n.Comments = append(n.Comments, text)
}

func (p *moveTextParser) addNAG(code int) {
	n := p.tree.Node(p.cur)
	for _, c := range n.NAGs {
		if c == code {
			return
		}
	}
	n.NAGs = append(n.NAGs, code)
}

func (p *moveTextParser) token(tok string) {
	if tok == "" {
		return
	}
	if results[tok] {
		if len(p.stack) == 0 {
			p.result = tok
		}
		return
	}
	tok = stripMoveNumber(tok)
	if tok == "" {
		return
	}
	san, glyph := SplitGlyph(tok)
	if san == "" {
		if code, ok := glyphCodes[glyph]; ok && p.cur != p.tree.Root() {
			p.addNAG(code)
		}
		return
	}
	if !looksLikeMove(san) {
		return
	}
	p.cur = p.tree.Add(p.cur, san)
	p.fresh = false
	if code, ok := glyphCodes[glyph]; ok {
		p.addNAG(code)
	}
}

// stripMoveNumber removes a leading "12." / "12..." marker.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 || i == len(tok) || tok[i] != '.' {
		if i == len(tok) {
			return ""
		}
		return tok
	}
	for i < len(tok) && tok[i] == '.' {
		i++
	}
	return tok[i:]
}

// SplitGlyph separates a trailing !/? annotation from a SAN token.
func SplitGlyph(tok string) (san, glyph string) {
	end := len(tok)
	for end > 0 && (tok[end-1] == '!' || tok[end-1] == '?') {
		end--
	}
	return tok[:end], tok[end:]
}

func looksLikeMove(s string) bool {
	if s == "--" || s == "Z0" {
		return false
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'h':
		return true
	case strings.ContainsRune("KQRBNP", rune(c)):
		return true
	case c == 'O' || c == '0':
		return strings.HasPrefix(s, "O-O") || strings.HasPrefix(s, "0-0")
	}
	return false
}
