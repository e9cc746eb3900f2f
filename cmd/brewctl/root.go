package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath       string
	errorsDBPath string
	timezone     string
)

var rootCmd = &cobra.Command{
	Use:          "brewctl",
	Short:        "brewctl manages the mogbrew beer log from your terminal",
	Long:         "brewctl seeds demo data, logs beers and prints insights, leaderboards and recorded errors for a mogbrew database.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (default DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&errorsDBPath, "errors-db", "", "Path to error log database (default ERRORS_DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "Reference timezone for daily buckets (default TIMEZONE)")
}
