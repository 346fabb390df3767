package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/teamscan/internal/crawler"
	"github.com/jmylchreest/teamscan/internal/logger"
	"github.com/jmylchreest/teamscan/internal/urlfile"
	"github.com/jmylchreest/teamscan/pkg/profile"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find likely team pages for a list of sites",
	Long: `For each site in the input list, check the sitemap (falling back to
homepage links) for same-host URLs whose path matches a discovery
keyword. Results are appended to the output file in batches, one
line per site: the site followed by its candidates.

Examples:
  # Scan sites with the default keywords
  teamscan discover -i sites.csv -o candidates.csv

  # Custom keywords, best match only
  teamscan discover -i sites.csv --keywords attorney,partner --limit 1`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	flags := discoverCmd.Flags()

	flags.StringP("input", "i", "", "input file with one site per line (required)")
	flags.StringP("output", "o", "candidates.csv", "output file (appended to)")
	flags.StringSlice("keywords", nil, "link keywords in priority order (default: profile keywords)")
	flags.String("profile", "", "extraction profile YAML (for discover_keywords)")
	flags.Int("limit", 10, "max candidates per site")
	flags.Int("batch-size", 10, "flush results every N sites")
	flags.Duration("timeout", 20*time.Second, "per-site request timeout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inputPath, _ := cmd.Flags().GetString("input")
	sites, err := urlfile.Read(inputPath)
	if err != nil {
		logger.Error("failed to read site list", "error", err)
		return err
	}
	if len(sites) == 0 {
		logger.Warn("input file contains no sites", "path", inputPath)
		return nil
	}
	logger.Info("loaded sites", "count", len(sites))

	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	if len(keywords) == 0 {
		prof := profile.Default()
		if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
			prof, err = profile.FromFile(profilePath)
			if err != nil {
				logger.Error("failed to load profile", "error", err)
				return err
			}
		}
		keywords = prof.DiscoverKeywords
	}

	limit, _ := cmd.Flags().GetInt("limit")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	d := crawler.New(crawler.Options{
		Keywords: keywords,
		Limit:    limit,
		Timeout:  timeout,
	})

	outputPath, _ := cmd.Flags().GetString("output")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	results := crawler.NewBatchWriter(outputPath, batchSize)

	var failed int
	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			// Keep whatever is buffered before bailing out.
			if ferr := results.Flush(); ferr != nil {
				logger.Error("failed to flush results", "error", ferr)
			}
			return err
		}

		candidates, err := d.Discover(ctx, site)
		if err != nil {
			logger.Error("discovery failed", "site", site, "error", err)
			failed++
			candidates = nil
		}
		if err := results.Add(site, candidates); err != nil {
			logger.Error("failed to write results", "error", err)
			return err
		}
	}

	if err := results.Flush(); err != nil {
		logger.Error("failed to flush results", "error", err)
		return err
	}

	logger.Info("done", "output", outputPath, "sites", len(sites), "failed", failed)
	return nil
}
