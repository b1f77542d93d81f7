package analysis

import (
	"fmt"

	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
	"golang.org/x/sync/errgroup"
)

// analyzeGames runs games independently, at most o.Parallelism at a time.
// Results keep input order so the report does not depend on scheduling. A
// game whose analysis panics is kept unmatched and the first such failure is
// returned.
func analyzeGames(games []pgn.Game, player string, o Options) ([]models.GameAnalysis, error) {
	out := make([]models.GameAnalysis, len(games))
	var g errgroup.Group
	g.SetLimit(max(1, o.Parallelism))
	for i := range games {
		g.Go(func() (err error) {
			out[i], err = analyzeRecovered(&games[i], player, o)
			return err
		})
	}
	return out, g.Wait()
}

func analyzeRecovered(g *pgn.Game, player string, o Options) (res models.GameAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = models.GameAnalysis{Game: identify(g, o.Source)}
			err = fmt.Errorf("analysis: game %d: %v", g.Index, r)
		}
	}()
	return analyzeGame(g, player, o), nil
}
