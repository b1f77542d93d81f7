package models

import (
	"github.com/vytor/chessinsight/internal/features"
	"github.com/vytor/chessinsight/internal/themes"
)

// GameIdentity is what the headers say about a game.
type GameIdentity struct {
	Index     int    `json:"index"`
	GameID    string `json:"game_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Site      string `json:"site,omitempty"`
	Event     string `json:"event,omitempty"`
	Date      string `json:"date,omitempty"`
	Round     string `json:"round,omitempty"`
	White     string `json:"white"`
	Black     string `json:"black"`
	Result    string `json:"result"`
	ECO       string `json:"eco,omitempty"`
	Opening   string `json:"opening,omitempty"`
	Variation string `json:"variation,omitempty"`
}

// Punishment line origins.
const (
	PunishmentMissedLine     = "missed_line"
	PunishmentReplyVariation = "reply_variation"
	PunishmentMainLine       = "main_line"
)

// Flags carries the evidence behind a mistake: annotation glyphs, the
// opponent's reply, near-term material loss and feature snapshots on both
// sides of the move.
type Flags struct {
	Glyphs                []string          `json:"glyphs,omitempty"`
	SymbolOnly            bool              `json:"symbol_only"`
	OpponentReplySAN      string            `json:"opponent_reply_san,omitempty"`
	OpponentReplyCapture  bool              `json:"opponent_reply_capture"`
	OpponentReplyCheck    bool              `json:"opponent_reply_check"`
	MaterialLossSoonPawns int               `json:"material_loss_soon_pawns"`
	Before                features.Snapshot `json:"before"`
	After                 features.Snapshot `json:"after"`
	PunishmentSource      string            `json:"punishment_source,omitempty"`
}

// Alternative is a sibling move the player could have chosen.
type Alternative struct {
	SAN            string `json:"san"`
	Line           string `json:"line"`
	CP             *int   `json:"cp,omitempty"`
	GainCPVsPlayed *int   `json:"gain_cp_vs_played,omitempty"`
	Capture        bool   `json:"capture"`
	Check          bool   `json:"check"`
}

// Mistake is one flagged move of the analysed player.
type Mistake struct {
	Game             GameIdentity  `json:"game"`
	Player           string        `json:"player"`
	PlayerColor      string        `json:"player_color"`
	Ply              int           `json:"ply"`
	MoveNumber       int           `json:"move_number"`
	Mover            string        `json:"mover"`
	PlayedSAN        string        `json:"played_san"`
	PlayedUCI        string        `json:"played_uci"`
	ContextStartFEN  string        `json:"context_start_fen"`
	SANContextBefore []string      `json:"san_context_before"`
	FENBefore        string        `json:"fen_before"`
	FENAfter         string        `json:"fen_after"`
	FENAfterReply    string        `json:"fen_after_reply,omitempty"`
	CPBefore         *int          `json:"cp_before,omitempty"`
	CPAfter          *int          `json:"cp_after,omitempty"`
	CPSwing          *int          `json:"cp_swing,omitempty"`
	CPLossAbs        *int          `json:"cp_loss_abs,omitempty"`
	Kind             Kind          `json:"kind"`
	Severity         Severity      `json:"severity"`
	Flags            Flags         `json:"flags"`
	BestAlternative  *Alternative  `json:"best_alternative,omitempty"`
	Alternatives     []Alternative `json:"alternatives,omitempty"`
	Tags             []themes.Tag  `json:"tags"`
	Theme            SummaryTheme  `json:"theme"`
}

// Loss is CPLossAbs with absent treated as zero.
func (m *Mistake) Loss() int {
	if m.CPLossAbs == nil {
		return 0
	}
	return *m.CPLossAbs
}
