package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vytor/chessinsight/internal/config"
	"github.com/vytor/chessinsight/internal/logger"
)

var (
	// Global flags.
	verbose  bool
	logLevel string

	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chessinsight",
	Short: "Find recurring mistakes and pawn structures in annotated games",
	Long: `chessinsight reads PGN files annotated with engine evaluations
([%eval ...] comments) and error glyphs (?, ??, ?!) and reports the
mistakes one player keeps making, grouped by opening and theme.

Examples:
  # Mistakes of one player, as text
  chessinsight analyze games.pgn --player "Magnus Carlsen"

  # Only games with black, up to move 20, as JSON
  chessinsight analyze games.pgn --player carlsen --color black --max-move 20 --json

  # Store the report in a database and list stored reports
  chessinsight analyze games.pgn --player carlsen --db reports.db
  chessinsight reports --db reports.db

  # Pawn skeletons reached after white's 10th move
  chessinsight structures games.pgn --player carlsen --color white --move 10`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if verbose {
			level = "DEBUG"
		}
		log = logger.New(
			logger.WithOutput(os.Stderr),
			logger.WithLevel(logger.ParseLevel(level)),
		)
		logger.SetDefault(log)
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "log level: DEBUG, INFO, WARN, ERROR")
}

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("%s contains no PGN", path)
	}
	return string(b), nil
}
