package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/chessinsight/internal/db"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/repository/sqlite"
	"github.com/vytor/chessinsight/internal/services"
)

var reportsCmd = &cobra.Command{
	Use:   "reports [ID]",
	Short: "List stored reports, or show one",
	Long: `Without ID, list the reports stored by 'chessinsight analyze --db'.
With ID, print that report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReports,
}

var (
	reportsDB     string
	reportsPlayer string
	reportsStatus string
	reportsLimit  int
	reportsJSON   bool
)

func init() {
	reportsCmd.Flags().StringVar(&reportsDB, "db", "chessinsight.db", "SQLite database holding the reports")
	reportsCmd.Flags().StringVarP(&reportsPlayer, "player", "p", "", "only reports for this player")
	reportsCmd.Flags().StringVar(&reportsStatus, "status", "", "only reports in this state: pending, processing, completed, failed")
	reportsCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "maximum reports listed")
	reportsCmd.Flags().BoolVar(&reportsJSON, "json", false, "print JSON")
	rootCmd.AddCommand(reportsCmd)
}

func runReports(cmd *cobra.Command, args []string) error {
	database, err := db.Open(reportsDB)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := signalContext()
	defer cancel()
	svc := services.NewReportService(sqlite.NewReportRepository(database.DB), nil, cfg.AnalysisOptions(log), nil)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid report id %q", args[0])
		}
		stored, err := svc.Get(ctx, id)
		if err != nil {
			return err
		}
		if reportsJSON {
			return printJSON(out, stored)
		}
		if stored.Report == nil {
			fmt.Fprintf(out, "report %d is %s %s\n", stored.ID, stored.Status, stored.Error)
			return nil
		}
		printReport(out, stored.Report)
		return nil
	}

	list, total, err := svc.List(ctx, models.ReportFilter{Player: reportsPlayer, Status: reportsStatus, Limit: reportsLimit})
	if err != nil {
		return err
	}
	if reportsJSON {
		return printJSON(out, list)
	}
	if total == 0 {
		fmt.Fprintln(out, "No reports stored.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYER\tCOLOR\tSTATUS\tGAMES\tMISTAKES\tCREATED")
	for _, r := range list {
		color := r.Color
		if color == "" {
			color = "any"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%d\t%s\n", r.ID, r.Player, color, r.Status,
			r.MatchedGames, r.TotalGames, r.MistakeCount, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d reports\n", len(list), total)
	return nil
}
