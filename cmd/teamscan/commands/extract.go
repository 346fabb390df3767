package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/teamscan/internal/logger"
	"github.com/jmylchreest/teamscan/internal/urlfile"
	"github.com/jmylchreest/teamscan/pkg/cleaner"
	"github.com/jmylchreest/teamscan/pkg/extract"
	"github.com/jmylchreest/teamscan/pkg/fetcher"
	"github.com/jmylchreest/teamscan/pkg/llm"
	"github.com/jmylchreest/teamscan/pkg/pipeline"
	"github.com/jmylchreest/teamscan/pkg/profile"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract people from team-page URLs into a CSV file",
	Long: `Fetch each URL from the input list, clean the page to plain text,
ask the model for one CSV row per person, and append deduplicated
rows to the output file. Every URL leaves a trace: pages that fail
or yield nothing get a placeholder row.

Examples:
  # Basic run against Anthropic (uses ANTHROPIC_API_KEY)
  teamscan extract -i urls.csv -o people.csv

  # Local Ollama with a custom profile
  teamscan extract -i urls.csv -p ollama -m llama3.2 --profile lawyers.yaml

  # Only save cleaned page text, skip the model
  teamscan extract -i urls.csv --save-raw-only`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	flags.StringP("input", "i", "", "input file with one URL per line (required)")
	flags.StringP("output", "o", "people.csv", "output CSV file (appended to)")
	flags.String("artifact-dir", "artifacts", "directory for per-URL debug files")

	// LLM settings
	flags.StringP("provider", "p", "", "LLM provider: anthropic, openai, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Float64("temperature", 0.6, "sampling temperature")
	flags.Int("max-new-tokens", 2048, "max tokens the model may generate")
	flags.Duration("timeout", 120*time.Second, "per-request LLM timeout")

	// Extraction settings
	flags.Int("max-input-chars", 24000, "truncate page text beyond this many characters (0=unlimited)")
	flags.String("profile", "", "extraction profile YAML (subject, extra rules)")
	flags.Bool("save-raw-only", false, "fetch and clean pages only, skip the model")

	_ = extractCmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	inputPath, _ := cmd.Flags().GetString("input")
	urls, err := urlfile.Read(inputPath)
	if err != nil {
		logger.Error("failed to read URL list", "error", err)
		return err
	}
	if len(urls) == 0 {
		logger.Warn("input file contains no URLs", "path", inputPath)
		return nil
	}
	logger.Info("loaded URLs", "count", len(urls))

	prof := profile.Default()
	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		prof, err = profile.FromFile(profilePath)
		if err != nil {
			logger.Error("failed to load profile", "error", err)
			return err
		}
		logger.Debug("loaded profile", "name", prof.Name, "subject", prof.Subject)
	}

	cfg := pipeline.DefaultConfig()
	cfg.OutputPath, _ = cmd.Flags().GetString("output")
	cfg.ArtifactDir, _ = cmd.Flags().GetString("artifact-dir")
	cfg.MaxInputChars, _ = cmd.Flags().GetInt("max-input-chars")
	cfg.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	cfg.MaxNewTokens, _ = cmd.Flags().GetInt("max-new-tokens")
	cfg.SaveRawOnly, _ = cmd.Flags().GetBool("save-raw-only")

	runner := &pipeline.Runner{
		Fetcher: fetcher.NewStaticFetcher(fetcher.DefaultOptions()),
		Cleaner: cleaner.NewText(),
		Prompter: extract.Prompter{
			Subject:    prof.Subject,
			ExtraRules: prof.ExtraRules,
			MaxChars:   cfg.MaxInputChars,
		},
		Config: cfg,
	}
	defer runner.Fetcher.Close()

	if !cfg.SaveRawOnly {
		provider, err := buildProvider(cmd)
		if err != nil {
			logger.Error("failed to create provider", "error", err)
			return err
		}
		if op, ok := provider.(*llm.OllamaProvider); ok {
			pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
			err := op.Ping(pingCtx)
			pingCancel()
			if err != nil {
				logger.Error("Ollama is not reachable", "error", err)
				return err
			}
		}
		logger.Info("using provider", "provider", provider.Name(), "model", provider.Model())
		runner.Provider = provider
	}

	summary, err := runner.Run(ctx, urls)
	if err != nil {
		logger.Error("run failed", "error", err)
		return err
	}
	logger.Info("done",
		"output", cfg.OutputPath,
		"people", summary.People,
		"placeholders", summary.Placeholders)
	return nil
}

// buildProvider resolves the provider from flags, config, and env.
func buildProvider(cmd *cobra.Command) (llm.Provider, error) {
	name := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if name == "" {
		var detectedKey string
		name, detectedKey = llm.DetectProvider()
		if apiKey == "" {
			apiKey = detectedKey
		}
		logger.Debug("auto-detected provider", "provider", name)
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	cfg := llm.DefaultProviderConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = viper.GetString("base_url")
	cfg.Model = viper.GetString("model")
	if timeout > 0 {
		cfg.Timeout = timeout
	}

	return llm.NewProvider(name, cfg)
}
