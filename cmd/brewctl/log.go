package main

import (
	"fmt"
	"strings"

	"github.com/mogbrew/internal/catalog"
	"github.com/mogbrew/internal/service"
	"github.com/spf13/cobra"
)

var (
	logUser      string
	logBeer      string
	logBrand     string
	logABV       float64
	logContainer string
	logVolume    int
	logQuantity  int
	logNotes     string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log one or more beers for a crew member",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := service.LogInput{
			UserID:        logUser,
			BeerName:      logBeer,
			Brand:         logBrand,
			ABV:           logABV,
			ContainerType: logContainer,
			VolumeML:      logVolume,
			Quantity:      logQuantity,
			Notes:         logNotes,
		}

		// 目录里的啤酒可以只给名字
		if beer, ok := catalog.LookupBeer(strings.TrimSpace(logBeer)); ok {
			input.BeerName = beer.Name
			if !cmd.Flags().Changed("brand") {
				input.Brand = beer.Brand
			}
			if !cmd.Flags().Changed("abv") {
				input.ABV = beer.ABV
			}
		}

		return withBeers(func(rt *brewEnv) error {
			rows, err := rt.beers.Log(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d x %s (%s, %dml) for %s\n", len(rows), rows[0].BeerName, rows[0].ContainerType, rows[0].VolumeML, rows[0].UserID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logUser, "user", "", "Crew member id (ian, tyler, james)")
	logCmd.Flags().StringVar(&logBeer, "beer", "", "Beer name")
	logCmd.Flags().StringVar(&logBrand, "brand", "", "Brand (default from catalog)")
	logCmd.Flags().Float64Var(&logABV, "abv", 0, "ABV percent (default from catalog)")
	logCmd.Flags().StringVar(&logContainer, "container", "can_355ml", "Container id")
	logCmd.Flags().IntVar(&logVolume, "volume", 0, "Volume in ml (default from container)")
	logCmd.Flags().IntVar(&logQuantity, "quantity", 1, "Number of beers")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Optional notes")
	_ = logCmd.MarkFlagRequired("user")
	_ = logCmd.MarkFlagRequired("beer")
}
