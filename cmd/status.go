package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	statusCache     string
	statusAltPlaces string
)

var statusCmd = &cobra.Command{
	Use:   "status <file>",
	Short: "Report how much of a file's places are already cached",
	Long:  "Extracts the input's place strings and partitions them against the cache without geocoding anything.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		cachePath := cfg.Cache.Path
		if statusCache != "" {
			cachePath = statusCache
		}
		altPath := altFileFor(input)
		if statusAltPlaces != "" {
			altPath = statusAltPlaces
		}

		store, err := openStore(cachePath, altPath)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck
		if err := store.Load(); err != nil {
			return eris.Wrap(err, "load cache")
		}

		book, err := loadBook(input, cfg.Fuzzy.Threshold)
		if err != nil {
			return err
		}

		var cached, uses int
		for placeStr, loc := range book.Addresses() {
			uses += loc.Used
			if store.Has(placeStr) {
				cached++
			}
		}

		zap.L().Debug("status computed",
			zap.String("input", input),
			zap.Int("cache_entries", store.Len()),
		)

		fmt.Printf("%s: %d distinct places (%d uses)\n", input, book.Len(), uses)
		fmt.Printf("cache %s: %d entries, %d/%d places cached, %d to geocode\n",
			cachePath, store.Len(), cached, book.Len(), book.Len()-cached)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusCache, "cache", "", "cache file path (default from config)")
	statusCmd.Flags().StringVar(&statusAltPlaces, "alt-places", "", "alternate-address file (default <stem>_alt.csv next to the input)")
	rootCmd.AddCommand(statusCmd)
}
