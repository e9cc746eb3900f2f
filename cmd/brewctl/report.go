package main

import (
	"fmt"

	"github.com/mogbrew/internal/db"
	"github.com/mogbrew/internal/insight"
	"github.com/mogbrew/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

var (
	insightsUser      string
	leaderboardPeriod string
	errorsLimit       int
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Print insights for a crew member as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBeers(func(rt *brewEnv) error {
			result, err := service.NewInsightService(rt.beers).Insights(cmd.Context(), insightsUser)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the crew leaderboard as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := insight.ParsePeriod(leaderboardPeriod)
		if err != nil {
			return err
		}
		return withBeers(func(rt *brewEnv) error {
			board, err := service.NewInsightService(rt.beers).Leaderboard(cmd.Context(), period)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), board)
		})
	},
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Print recent error log records",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gdb, err := db.Open(cfg.ErrorsDatabasePath, "mogbrew-errors.db")
		if err != nil {
			return err
		}
		gdb.Logger = logger.Default.LogMode(logger.Silent)
		defer closeDB(gdb)

		if err := db.MigrateErrors(gdb); err != nil {
			return err
		}

		records, err := service.NewErrorLogService(gdb, zap.NewNop(), cfg.AppName).Recent(cmd.Context(), errorsLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No errors recorded")
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Type, r.Service, r.Message)
			if r.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    url: %s\n", r.URL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd, leaderboardCmd, errorsCmd)
	insightsCmd.Flags().StringVar(&insightsUser, "user", "", "Crew member id")
	_ = insightsCmd.MarkFlagRequired("user")
	leaderboardCmd.Flags().StringVar(&leaderboardPeriod, "period", "week", "week or all")
	errorsCmd.Flags().IntVar(&errorsLimit, "limit", 20, "Number of records to show")
}
