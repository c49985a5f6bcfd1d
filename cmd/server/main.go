// Package main is the entry point for the sheet-api server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sheet-api",
	Short: "Character sheet normalization API",
	Long:  `sheet-api fetches raw creature payloads from the sheet service, normalizes them into flat character records, and serves them over HTTP/JSON with Redis-backed snapshots.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
