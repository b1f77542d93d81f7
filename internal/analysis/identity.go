package analysis

import (
	"strings"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
)

var (
	bookOnce sync.Once
	book     *opening.BookECO
)

func ecoBook() *opening.BookECO {
	bookOnce.Do(func() { book = opening.NewBookECO() })
	return book
}

func identify(g *pgn.Game, source string) models.GameIdentity {
	result := g.Header("Result")
	if result == "" {
		result = g.Result
	}
	return models.GameIdentity{
		Index:     g.Index,
		GameID:    gameID(g),
		Source:    source,
		Site:      g.Header("Site"),
		Event:     g.Header("Event"),
		Date:      g.Header("Date"),
		Round:     g.Header("Round"),
		White:     g.Header("White"),
		Black:     g.Header("Black"),
		Result:    result,
		ECO:       g.Header("ECO"),
		Opening:   g.Header("Opening"),
		Variation: g.Header("Variation"),
	}
}

// gameID prefers the Link header chess.com writes and falls back to a
// URL-valued Site.
func gameID(g *pgn.Game) string {
	for _, key := range []string{"Link", "Site"} {
		if v := g.Header(key); strings.HasPrefix(v, "http") {
			return pgn.ExtractGameID(v)
		}
	}
	return ""
}

// fillOpening names the opening from the played moves when the headers did
// not.
func fillOpening(id *models.GameIdentity, moves []*chess.Move) {
	if id.Opening != "" || len(moves) == 0 {
		return
	}
	o := ecoBook().Find(moves)
	if o == nil {
		return
	}
	id.Opening = o.Title()
	if id.ECO == "" {
		id.ECO = o.Code()
	}
}
