package main

import (
	"github.com/spf13/cobra"

	"github.com/vytor/chessinsight/internal/services"
)

var structuresCmd = &cobra.Command{
	Use:   "structures FILE",
	Short: "List pawn skeletons the player reached at a given move",
	Long: `Replay the main line of every game the player had with --color and
record the pawn-only position right after that side's --move. Structures
are ranked by how often they occur, with the player's results in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runStructures,
}

var (
	structuresPlayer string
	structuresColor  string
	structuresMove   int
	structuresJSON   bool
)

func init() {
	structuresCmd.Flags().StringVarP(&structuresPlayer, "player", "p", "", "player name (required)")
	structuresCmd.Flags().StringVarP(&structuresColor, "color", "c", "white", "player's colour: white, black")
	structuresCmd.Flags().IntVarP(&structuresMove, "move", "m", 10, "move number after which the structure is taken")
	structuresCmd.Flags().BoolVar(&structuresJSON, "json", false, "print the result as JSON")
	_ = structuresCmd.MarkFlagRequired("player")
	rootCmd.AddCommand(structuresCmd)
}

func runStructures(cmd *cobra.Command, args []string) error {
	pgnText, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	svc := services.NewReportService(nil, nil, cfg.AnalysisOptions(log.WithPrefix("analysis")), nil)
	report, err := svc.Structures(ctx, services.StructuresRequest{
		PGN:        pgnText,
		Player:     structuresPlayer,
		Color:      structuresColor,
		MoveNumber: structuresMove,
	})
	if err != nil {
		return err
	}
	if structuresJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printStructures(cmd.OutOrStdout(), report)
	return nil
}
