package pgn

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoGames is returned when the input holds no game with a header block.
var ErrNoGames = errors.New("pgn: no games found")

// syntheticHeaders is prepended to header-less input on the lenient retry.
const syntheticHeaders = "[Event \"?\"]\n[White \"?\"]\n[Black \"?\"]\n[Result \"*\"]\n\n"

var headerRe = regexp.MustCompile(`^\[(\w+)\s+"((?:[^"\\]|\\.)*)"\s*\]`)

// Game is one parsed game: its header tags and its move tree.
type Game struct {
	Index   int
	Headers map[string]string
	Tree    *Tree
	Result  string
}

// Header returns the value of a tag, or "" when missing or "?".
func (g *Game) Header(key string) string {
	v := strings.TrimSpace(g.Headers[key])
	if v == "?" {
		return ""
	}
	return v
}

// ParsePGNHeaders extracts PGN header tags into a map
func ParsePGNHeaders(pgn string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(pgn, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		m := headerRe.FindStringSubmatch(line)
		if len(m) == 3 {
			out[m[1]] = strings.ReplaceAll(m[2], `\"`, `"`)
		}
	}
	return out
}

var gameIDRe = regexp.MustCompile(`.*/game/[^/]+/([0-9]+)`)

// ExtractGameID extracts the numeric game id from a chess.com style game URL.
// Other values (lichess URLs, plain site names) are returned unchanged.
func ExtractGameID(url string) string {
	m := gameIDRe.FindStringSubmatch(url)
	if len(m) == 2 {
		return m[1]
	}
	return url
}

// Parse splits a PGN blob into games. Chunks without a header block are not
// games; ErrNoGames is returned when nothing qualifies.
func Parse(text string) ([]Game, error) {
	chunks := split(text)
	games := make([]Game, 0, len(chunks))
	for _, c := range chunks {
		if len(c.headers) == 0 {
			continue
		}
		headers := ParsePGNHeaders(strings.Join(c.headers, "\n"))
		if len(headers) == 0 {
			continue
		}
		tree, result := ParseMoveText(c.moves)
		if result == "" {
			result = headers["Result"]
		}
		games = append(games, Game{
			Index:   len(games),
			Headers: headers,
			Tree:    tree,
			Result:  result,
		})
	}
	if len(games) == 0 {
		return nil, ErrNoGames
	}
	return games, nil
}

// ParseLenient is Parse with one retry: input that yields no games is wrapped
// in a minimal synthetic header block and parsed again.
func ParseLenient(text string) ([]Game, error) {
	games, err := Parse(text)
	if err == nil {
		return games, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, err
	}
	return Parse(syntheticHeaders + text)
}

type chunk struct {
	headers []string
	moves   string
}

// split groups lines into header/movetext chunks. A header line seen after
// movetext starts a new chunk.
func split(text string) []chunk {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var (
		out      []chunk
		cur      chunk
		moves    strings.Builder
		inMoves  bool
		inBraces bool
	)
	flush := func() {
		cur.moves = moves.String()
		if len(cur.headers) > 0 || strings.TrimSpace(cur.moves) != "" {
			out = append(out, cur)
		}
		cur = chunk{}
		moves.Reset()
		inMoves = false
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBraces && strings.HasPrefix(trimmed, "[") && headerRe.MatchString(trimmed) {
			if inMoves {
				flush()
			}
			cur.headers = append(cur.headers, trimmed)
			continue
		}
		if trimmed == "" && !inMoves {
			continue
		}
		inMoves = true
		moves.WriteString(line)
		moves.WriteByte('\n')
		inBraces = braceDepth(line, inBraces)
	}
	flush()
	return out
}

// braceDepth reports whether a comment is still open after line.
func braceDepth(line string, open bool) bool {
	for _, r := range line {
		switch r {
		case '{':
			open = true
		case '}':
			open = false
		}
	}
	return open
}
