package analysis

import (
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/features"
	"github.com/vytor/chessinsight/internal/models"
)

// signals is everything the classifier looks at for one player move.
type signals struct {
	// loss is the player-relative centipawn loss; known is false when either
	// side of the move lacks an evaluation.
	loss  int
	known bool

	altGain     int
	altTactical bool
	symbolError bool

	opening   bool
	applied   board.Applied
	devBefore features.Development
	devAfter  features.Development
}

// verdict is the classifier output for one move.
type verdict struct {
	emit       bool
	symbolOnly bool
	kind       models.Kind
	severity   models.Severity
}

func classify(s signals, o Options) verdict {
	byLoss := s.known && s.loss >= o.CpInaccuracy
	byAlt := s.altGain >= o.MinAltGainCp && !s.known
	bySymbol := o.AllowSymbolOnly && s.symbolError && !byLoss

	v := verdict{emit: byLoss || byAlt || bySymbol}
	if !v.emit {
		return v
	}
	strongAlt := s.altGain >= o.MinAltGainCp

	loss := 0
	if s.known {
		loss = s.loss
	}
	v.severity = o.severityFor(max(loss, s.altGain))

	switch {
	case bySymbol && !strongAlt:
		v.symbolOnly = true
		v.kind = models.KindPositionalMisplay
		v.severity = max(v.severity, models.SeverityInaccuracy)
	case byLoss && loss >= o.CpBlunder:
		v.kind = models.KindTacticalBlunder
	case byLoss && loss >= o.CpMistake:
		v.kind = models.KindTacticalMistake
	case byLoss:
		v.kind = inaccuracyKind(s, o, strongAlt)
	case strongAlt:
		v.kind = models.KindPositionalMisplay
	default:
		v.kind = models.KindUnknown
		v.severity = models.SeverityInfo
	}
	return v
}

// inaccuracyKind applies the sub-rules of the inaccuracy band in order.
func inaccuracyKind(s signals, o Options, strongAlt bool) models.Kind {
	stalled := s.devBefore.UndevelopedMinors >= 3 && s.devAfter.UndevelopedMinors >= s.devBefore.UndevelopedMinors
	a := s.applied
	if s.opening && stalled {
		if nonDeveloping(a) || flankPush(a) {
			return models.KindOpeningPrinciple
		}
		if (a.Role == board.Queen || nonCentralPush(a)) && s.loss >= o.MinStrategicLossCp {
			return models.KindPieceInactivity
		}
	}
	if strongAlt && s.altTactical {
		return models.KindTacticalInaccuracy
	}
	return models.KindPositionalMisplay
}

func nonDeveloping(a board.Applied) bool {
	switch a.Role {
	case board.Queen, board.Rook:
		return !a.Capture
	case board.King:
		return !a.Castle && !a.Capture
	}
	return false
}

func flankPush(a board.Applied) bool {
	if a.Role != board.Pawn || a.Capture {
		return false
	}
	f := board.FileOf(a.From)
	return f <= 1 || f >= 6
}

func nonCentralPush(a board.Applied) bool {
	if a.Role != board.Pawn || a.Capture {
		return false
	}
	f := board.FileOf(a.From)
	return f != 3 && f != 4
}

// tacticalKind is the tactical kind matching a known loss.
func tacticalKind(loss int, o Options) models.Kind {
	switch {
	case loss >= o.CpBlunder:
		return models.KindTacticalBlunder
	case loss >= o.CpMistake:
		return models.KindTacticalMistake
	}
	return models.KindTacticalInaccuracy
}
