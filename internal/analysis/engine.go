// Package analysis walks annotated games and reports the mistakes a player
// made in them.
package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/eval"
	"github.com/vytor/chessinsight/internal/features"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
	"github.com/vytor/chessinsight/internal/report"
	"github.com/vytor/chessinsight/internal/themes"
)

// Analyze parses every game in pgnText and reports player's mistakes. The
// result depends only on the input and options.
func Analyze(pgnText, player string, opts Options) *models.Report {
	o := opts.normalized()
	log := o.Logger.WithPrefix("analysis")

	games, err := pgn.ParseLenient(pgnText)
	if err != nil {
		log.Debug("nothing to analyse: %v", err)
		return report.Build(player, nil, o.TopMistakes)
	}
	results, err := analyzeGames(games, player, o)
	if err != nil {
		log.Error("game left out of the report: %v", err)
	}
	return report.Build(player, results, o.TopMistakes)
}

func analyzeGame(g *pgn.Game, player string, o Options) models.GameAnalysis {
	log := o.Logger.WithPrefix("analysis").WithField("game", g.Index)
	res := models.GameAnalysis{Game: identify(g, o.Source)}

	start, err := board.FromHeaders(g.Headers)
	if err != nil {
		log.Debug("skipping game: %v", err)
		return res
	}
	color, ok := matchPlayer(res.Game.White, res.Game.Black, player, o.PlayerColor)
	if !ok {
		log.Debug("player %q not found in %q vs %q", player, res.Game.White, res.Game.Black)
		return res
	}
	res.Matched = true
	res.Color = ColorName(color)

	w := &walker{o: o, log: log, tree: g.Tree, player: player, color: color}
	w.run(start)

	if g.Header("FEN") == "" {
		fillOpening(&res.Game, w.moves)
	}
	res.Plies = w.plies
	res.Mistakes = w.mistakes
	for i := range res.Mistakes {
		res.Mistakes[i].Game = res.Game
	}
	return res
}

// pendingMistake is an emitted mistake waiting for the opponent's reply.
type pendingMistake struct {
	m             models.Mistake
	node, parent  int
	before, after board.Position
}

type walker struct {
	o      Options
	log    *logger.Logger
	tree   *pgn.Tree
	player string
	color  chess.Color

	// sans[i] was played from fens[i].
	sans  []string
	fens  []string
	moves []*chess.Move

	pending  *pendingMistake
	mistakes []models.Mistake
	plies    int
}

func (w *walker) run(start board.Position) {
	pos := start
	// ply follows the main-line nodes, so a skipped move still takes its slot.
	ply := plyOf(start.FullMove(), start.Turn()) - 1
	for node := w.tree.MainChild(w.tree.Root()); node >= 0; node = w.tree.MainChild(node) {
		ply++
		if w.o.MaxMove > 0 && (ply+1)/2 > w.o.MaxMove {
			break
		}
		san := w.tree.Node(node).SAN
		m, err := pos.Decode(san)
		if err != nil {
			w.log.Debug("skipping move %q: %v", san, err)
			continue
		}
		mover := pos.Turn()
		next, applied, err := pos.Apply(m)
		if err != nil {
			w.log.Debug("skipping move %q: %v", san, err)
			continue
		}

		switch {
		case mover == w.color:
			w.flush()
			w.plies++
			w.consider(node, ply, pos, next, applied)
		case w.pending != nil:
			w.enrich(pos, next, applied)
			w.flush()
		}

		w.fens = append(w.fens, pos.FEN())
		w.sans = append(w.sans, board.SanitizeSAN(applied.SAN))
		w.moves = append(w.moves, m)
		pos = next
	}
	w.flush()
}

func plyOf(moveNumber int, mover chess.Color) int {
	ply := 2*(moveNumber-1) + 1
	if mover == chess.Black {
		ply++
	}
	return ply
}

func (w *walker) consider(node, ply int, before, after board.Position, applied board.Applied) {
	o := w.o
	parent := w.tree.Node(node).Parent
	moveNumber := (ply + 1) / 2

	cpBefore, okBefore := eval.FromComments(w.tree.Node(parent).Comments).ForPlayer(w.color)
	cpAfter, okAfter := eval.FromComments(w.tree.Node(node).Comments).ForPlayer(w.color)
	var played *int
	if okAfter {
		played = intPtr(cpAfter)
	}
	cands := alternatives(w.tree, parent, before, w.color, played, o)
	top := best(cands)

	gb, ga := before.Grid(), after.Grid()
	fb, fa := features.Take(&gb, w.color), features.Take(&ga, w.color)
	glyphs := w.tree.Node(node).Glyphs()

	s := signals{
		known:       okBefore && okAfter,
		altGain:     gainOf(top),
		altTactical: top != nil && (top.alt.Capture || top.alt.Check),
		symbolError: hasErrorGlyph(glyphs),
		opening:     ply <= o.OpeningPhasePlies,
		applied:     applied,
		devBefore:   fb.Development,
		devAfter:    fa.Development,
	}
	if s.known {
		s.loss = max(0, cpBefore-cpAfter)
	}
	v := classify(s, o)
	if !v.emit {
		return
	}

	k := min(o.ContextPlies, len(w.sans))
	from := len(w.sans) - k
	window := make([]string, k)
	copy(window, w.sans[from:])
	contextFEN := before.FEN()
	if k > 0 {
		contextFEN = w.fens[from]
	}

	m := models.Mistake{
		Player:           w.player,
		PlayerColor:      ColorName(w.color),
		Ply:              ply,
		MoveNumber:       moveNumber,
		Mover:            ColorName(applied.Mover),
		PlayedSAN:        applied.SAN,
		PlayedUCI:        board.MoveToUCI(applied.Move),
		ContextStartFEN:  contextFEN,
		SANContextBefore: window,
		FENBefore:        before.FEN(),
		FENAfter:         after.FEN(),
		Kind:             v.kind,
		Severity:         v.severity,
		Flags: models.Flags{
			Glyphs:     glyphNames(glyphs),
			SymbolOnly: v.symbolOnly,
			Before:     fb,
			After:      fa,
		},
		Tags: []themes.Tag{},
	}
	if okBefore {
		m.CPBefore = intPtr(cpBefore)
	}
	if okAfter {
		m.CPAfter = intPtr(cpAfter)
	}
	if s.known {
		m.CPSwing = intPtr(cpAfter - cpBefore)
		m.CPLossAbs = intPtr(s.loss)
	}
	if top != nil {
		alt := top.alt
		m.BestAlternative = &alt
		m.Alternatives = topAlternatives(cands, 3)
	}
	w.pending = &pendingMistake{m: m, node: node, parent: parent, before: before, after: after}
}

// enrich records the opponent's reply on the pending mistake and upgrades
// its kind when the reply cashed in.
func (w *walker) enrich(before, after board.Position, reply board.Applied) {
	p := w.pending
	p.m.FENAfterReply = after.FEN()
	p.m.Flags.OpponentReplySAN = reply.SAN
	p.m.Flags.OpponentReplyCapture = reply.Capture
	p.m.Flags.OpponentReplyCheck = reply.Check

	gb, ga := before.Grid(), after.Grid()
	lost := max(0, gb.Material(w.color)-ga.Material(w.color))
	p.m.Flags.MaterialLossSoonPawns = lost

	switch {
	case lost >= 2:
		p.m.Kind = models.KindMaterialBlunder
		p.m.Severity = models.SeverityBlunder
	case p.m.Kind == models.KindPositionalMisplay && (reply.Capture || reply.Check) &&
		p.m.CPLossAbs != nil && p.m.Loss() >= w.o.CpInaccuracy:
		p.m.Kind = tacticalKind(p.m.Loss(), w.o)
	}
}

// flush tags the pending mistake and moves it to the output.
func (w *walker) flush() {
	p := w.pending
	if p == nil {
		return
	}
	w.pending = nil
	m := p.m

	pun := selectPunishment(w.tree, p.node, p.parent, p.before, p.after, w.color, w.o.ThemePlies)
	ctx := themes.NewContext(pun.start, pun.sans(w.tree), w.color, pun.punisher,
		pun.start.FullMove(), w.o.ThemePlies, pun.mateHint(w.tree), m.Ply <= w.o.OpeningPhasePlies)
	tags := themes.Run(ctx)
	if m.Kind == models.KindMaterialBlunder && hasOtherTactic(tags) {
		tags = themes.Without(tags, themes.HangingPiece)
	}
	m.Tags = tags
	m.Flags.PunishmentSource = pun.source
	m.Theme = inferTheme(&m, w.o)
	w.mistakes = append(w.mistakes, m)
}

func hasOtherTactic(tags []themes.Tag) bool {
	for _, t := range tags {
		if t == themes.HangingPiece {
			continue
		}
		if c := t.Category(); c == themes.CategoryTactic || c == themes.CategoryMate {
			return true
		}
	}
	return false
}

func hasErrorGlyph(gs []pgn.Glyph) bool {
	for _, g := range gs {
		if g.IsError() {
			return true
		}
	}
	return false
}

func glyphNames(gs []pgn.Glyph) []string {
	if len(gs) == 0 {
		return nil
	}
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = string(g)
	}
	return out
}
