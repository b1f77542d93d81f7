package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vytor/chessinsight/internal/analysis"
	"github.com/vytor/chessinsight/internal/db"
	"github.com/vytor/chessinsight/internal/jobs"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/repository/sqlite"
	"github.com/vytor/chessinsight/internal/services"
	statslogger "github.com/vytor/chessinsight/internal/stats/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Report the mistakes of one player",
	Long: `Walk every game of FILE (or standard input when FILE is "-") that the
player took part in and report their mistakes.

A move is a mistake when the evaluation drops by at least the inaccuracy
threshold from the player's side, when it carries an error glyph, or when
a sibling variation scores clearly better. Each mistake is classified,
assigned a severity and tagged with the tactical motifs of the punishing
line.

With --db the report is also stored and can be read back with
'chessinsight reports'.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzePlayer   string
	analyzeColor    string
	analyzeMaxMove  int
	analyzeTop      int
	analyzeJSON     bool
	analyzeDB       string
	analyzeParallel int
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzePlayer, "player", "p", "", "player name to analyse (required)")
	analyzeCmd.Flags().StringVarP(&analyzeColor, "color", "c", "", "only games where the player had this colour: white, black")
	analyzeCmd.Flags().IntVar(&analyzeMaxMove, "max-move", 0, "ignore moves after this move number (0 = no limit)")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "frequent mistakes listed per opening (0 = default)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full report as JSON")
	analyzeCmd.Flags().StringVar(&analyzeDB, "db", "", "store the report in this SQLite database")
	analyzeCmd.Flags().IntVar(&analyzeParallel, "parallel", 0, "games analysed concurrently (0 = ANALYSIS_PARALLELISM)")
	_ = analyzeCmd.MarkFlagRequired("player")
	rootCmd.AddCommand(analyzeCmd)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx := logger.NewContext(context.Background(), log)
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	pgnText, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	opts := cfg.AnalysisOptions(log.WithPrefix("analysis"))
	if analyzeParallel > 0 {
		opts.Parallelism = analyzeParallel
	}
	req := services.AnalyzeRequest{
		PGN:         pgnText,
		Player:      analyzePlayer,
		Color:       analyzeColor,
		MaxMove:     analyzeMaxMove,
		TopMistakes: analyzeTop,
	}
	collector := statslogger.New(log)

	var report *models.Report
	if analyzeDB == "" {
		svc := services.NewReportService(nil, nil, opts, collector)
		if report, err = svc.Analyze(ctx, req); err != nil {
			return err
		}
	} else {
		stored, err := analyzeAndStore(ctx, req, opts, collector)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "stored report %d in %s\n", stored.ID, analyzeDB)
		report = stored.Report
	}

	if analyzeJSON {
		return printJSON(cmd.OutOrStdout(), report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func analyzeAndStore(ctx context.Context, req services.AnalyzeRequest, opts analysis.Options, collector *statslogger.Collector) (*models.StoredReport, error) {
	database, err := db.Open(analyzeDB)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	queue := &jobs.InlineQueue{Ctx: ctx}
	svc := services.NewReportService(sqlite.NewReportRepository(database.DB), queue, opts, collector)
	queue.Runner = svc

	submitted, err := svc.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	stored, err := svc.Get(ctx, submitted.ID)
	if err != nil {
		return nil, err
	}
	if stored.Status != models.StatusCompleted {
		return nil, fmt.Errorf("report %d %s: %s", stored.ID, stored.Status, stored.Error)
	}
	return stored, nil
}
