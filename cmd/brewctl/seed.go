package main

import (
	"fmt"
	"time"

	"github.com/mogbrew/internal/seed"
	"github.com/spf13/cobra"
)

var (
	seedDays  int
	seedValue uint64
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo entries for every crew member",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedDays <= 0 {
			return fmt.Errorf("--days must be > 0")
		}
		return withBeers(func(rt *brewEnv) error {
			inserted, err := seed.Run(cmd.Context(), rt.db, seed.Options{
				Days:  seedDays,
				Now:   time.Now(),
				Seed:  seedValue,
				Force: seedForce,
			})
			if err != nil {
				return err
			}
			if inserted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database already has entries, skipped (use --force to replace)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d entries over %d days\n", inserted, seedDays)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().IntVar(&seedDays, "days", 30, "Number of days to generate")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 42, "Random seed")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Delete existing entries before seeding")
}
