// Package main provides the chessinsight CLI for finding recurring
// mistakes in annotated PGN collections.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
