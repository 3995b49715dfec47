package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gedtools/gedplace/internal/canonical"
	"github.com/gedtools/gedplace/internal/geocache"
	"github.com/gedtools/gedplace/internal/georef"
	"github.com/gedtools/gedplace/internal/resilience"
	"github.com/gedtools/gedplace/internal/resolver"
	"github.com/gedtools/gedplace/internal/summary"
	"github.com/gedtools/gedplace/pkg/nominatim"
)

var (
	resolveCache            string
	resolveFileCache        bool
	resolveAltPlaces        string
	resolveGeoConfig        string
	resolveDefaultCountry   string
	resolveAlwaysGeocode    bool
	resolveIncludeCanonical bool
	resolveOutput           string
	resolveNoSummaries      bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve the places of a GEDCOM or place-list file",
	Long:  "Extracts place strings from the input, answers what it can from the cache, geocodes the rest through Nominatim, and writes the places, countries and alt-place summaries next to the input.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		input := args[0]
		start := time.Now()
		log := zap.L().With(zap.String("command", "resolve"))

		cachePath := cfg.Cache.Path
		if resolveFileCache {
			cachePath = filepath.Join(filepath.Dir(input), stem(input)+"_cache.csv")
		}
		if resolveCache != "" {
			cachePath = resolveCache
		}
		altPath := altFileFor(input)
		if resolveAltPlaces != "" {
			altPath = resolveAltPlaces
		}
		if cfg.Cache.AltFile != "" && resolveAltPlaces == "" {
			altPath = cfg.Cache.AltFile
		}

		store, err := openStore(cachePath, altPath)
		if err != nil {
			return err
		}
		defer store.Close() //nolint:errcheck
		if err := store.Load(); err != nil {
			return eris.Wrap(err, "load cache")
		}

		geoPath := cfg.Geo.OverridesFile
		if resolveGeoConfig != "" {
			geoPath = resolveGeoConfig
		}
		geo, err := georef.Load(geoPath)
		if err != nil {
			return err
		}
		defaultCountry := cfg.Geo.DefaultCountry
		if resolveDefaultCountry != "" {
			defaultCountry = resolveDefaultCountry
		}
		if defaultCountry != "" {
			geo = geo.WithDefaultCountry(defaultCountry)
		}

		book, err := loadBook(input, cfg.Fuzzy.Threshold)
		if err != nil {
			return err
		}
		if book.Len() == 0 {
			fmt.Println("No places found in input")
			return nil
		}

		client := nominatim.NewClient(
			nominatim.WithBaseURL(cfg.Provider.BaseURL),
			nominatim.WithUserAgent(cfg.Provider.UserAgent),
			nominatim.WithRateInterval(cfg.Provider.Interval),
			nominatim.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout}),
		)

		res := resolver.New(store, client,
			resolver.WithGeoData(geo),
			resolver.WithCanonicalizer(canonical.New(
				canonical.WithMaxVariants(cfg.Canonical.MaxVariants),
			)),
			resolver.WithRetryConfig(resilience.RetryConfig{
				MaxAttempts: cfg.Provider.MaxRetries,
				Interval:    cfg.Provider.RetryBackoff,
			}),
			resolver.WithMaxDepth(cfg.Provider.MaxDepth),
			resolver.WithAlwaysResolve(cfg.Cache.AlwaysResolve || resolveAlwaysGeocode),
		)

		cached, uncached := res.Separate(book)
		log.Info("input scanned",
			zap.String("input", input),
			zap.Int("places", book.Len()),
			zap.Int("cached", cached.Len()),
			zap.Int("uncached", uncached.Len()),
		)

		stats := res.ResolveBook(ctx, book)

		outDir := filepath.Dir(input)
		if resolveOutput != "" {
			outDir = resolveOutput
		}

		g := new(errgroup.Group)
		g.Go(func() error {
			return eris.Wrap(store.Save(), "save cache")
		})
		if !resolveNoSummaries {
			g.Go(func() error {
				path := filepath.Join(outDir, stem(input)+"_places.csv")
				return summary.WritePlaces(path, book, resolveIncludeCanonical)
			})
			g.Go(func() error {
				path := filepath.Join(outDir, stem(input)+"_countries.csv")
				return summary.WriteCountries(path, book)
			})
			g.Go(func() error {
				path := filepath.Join(outDir, stem(input)+"_alt_places.csv")
				return summary.WriteAltPlaces(path, book)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if s, ok := store.(*geocache.SQLiteStore); ok {
			id, err := s.RecordRun(ctx, geocache.RunRecord{
				InputFile:  input,
				Places:     stats.Places,
				Cached:     stats.Cached,
				Resolved:   stats.Resolved,
				Unresolved: stats.Unresolved,
				Duration:   time.Since(start),
			})
			if err != nil {
				log.Warn("run log write failed", zap.Error(err))
			} else {
				log.Info("run recorded", zap.String("run_id", id))
			}
		}

		log.Info("resolve complete",
			zap.Int("places", stats.Places),
			zap.Int("cached", stats.Cached),
			zap.Int("resolved", stats.Resolved),
			zap.Int("unresolved", stats.Unresolved),
			zap.Duration("took", time.Since(start)),
		)
		fmt.Printf("%d places: %d cached, %d resolved, %d unresolved\n",
			stats.Places, stats.Cached, stats.Resolved, stats.Unresolved)
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveCache, "cache", "", "cache file path (default from config)")
	resolveCmd.Flags().BoolVar(&resolveFileCache, "file-cache", false, "use a per-input cache (<stem>_cache.csv next to the input)")
	resolveCmd.Flags().StringVar(&resolveAltPlaces, "alt-places", "", "alternate-address file (default <stem>_alt.csv next to the input)")
	resolveCmd.Flags().StringVar(&resolveGeoConfig, "geo-config", "", "geo override YAML (substitutions, default country, continents)")
	resolveCmd.Flags().StringVar(&resolveDefaultCountry, "default-country", "", "country appended to addresses that name none")
	resolveCmd.Flags().BoolVar(&resolveAlwaysGeocode, "always-geocode", false, "geocode every place even when cached")
	resolveCmd.Flags().BoolVar(&resolveIncludeCanonical, "include-canonical", false, "include the canonical_addr column in the places summary")
	resolveCmd.Flags().StringVar(&resolveOutput, "output", "", "directory for the summary files (default next to the input)")
	resolveCmd.Flags().BoolVar(&resolveNoSummaries, "no-summaries", false, "skip the summary files, only update the cache")
	rootCmd.AddCommand(resolveCmd)
}
