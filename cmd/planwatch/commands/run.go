package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planwatch/planwatch/internal/extract"
	"github.com/planwatch/planwatch/internal/llm"
	"github.com/planwatch/planwatch/internal/logger"
	"github.com/planwatch/planwatch/internal/output"
	"github.com/planwatch/planwatch/internal/pipeline"
	"github.com/planwatch/planwatch/internal/scraper"
	"github.com/planwatch/planwatch/pkg/reduce"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, reduce, and extract plans for carriers",
	Long: `Run the full pipeline: fetch each carrier's pricing page, reduce it
to minimal plan markup, and extract structured plans with an LLM.

Carriers are processed in order; a failure for one carrier is recorded
in its result and the run continues.

Examples:
  # All carriers, auto-detected provider
  planwatch run

  # Two carriers, results to a file as JSONL
  planwatch run -C rogers -C bell -o plans.jsonl --format jsonl

  # Reduction only, keep the markup in the results
  planwatch run --no-extract --include-markup

  # Local Ollama
  planwatch run -p ollama -m llama3.2`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()

	// Carrier selection
	flags.StringSliceP("carrier", "C", nil, "carrier(s) to process (default: all)")

	// LLM settings
	flags.StringP("provider", "p", "", "LLM provider: anthropic, openai, openrouter, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Int("max-retries", 3, "max extraction retries")

	// Fetch settings
	flags.String("fetch-mode", "dynamic", "fetch mode: static, dynamic")
	flags.Duration("timeout", 45*time.Second, "page fetch timeout")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("include-markup", false, "include reduced markup in results")
	flags.Bool("no-extract", false, "stop after reduction (no LLM stage)")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runRun(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Resolve carriers
	carrierNames, _ := cmd.Flags().GetStringSlice("carrier")
	var carriers []reduce.Carrier
	for _, name := range carrierNames {
		c, err := reduce.ParseCarrier(name)
		if err != nil {
			logError("%v (valid carriers: %s)", err, strings.Join(reduce.CarrierNames(), ", "))
			return err
		}
		carriers = append(carriers, c)
	}

	fetchModeStr, _ := cmd.Flags().GetString("fetch-mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	includeMarkup, _ := cmd.Flags().GetBool("include-markup")
	noExtract, _ := cmd.Flags().GetBool("no-extract")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	// Build the extractor unless reduction-only
	var ext *extract.Extractor
	if !noExtract {
		provider, err := buildProvider()
		if err != nil {
			logError("%v", err)
			return err
		}
		logger.Debug("LLM provider ready", "provider", provider.Name())
		ext = extract.New(provider, extract.WithMaxRetries(maxRetries))
	}

	fetcherCfg := scraper.DefaultFetcherConfig()
	fetcherCfg.Timeout = timeout
	p, err := pipeline.New(pipeline.Config{
		Carriers:      carriers,
		FetchMode:     scraper.FetchMode(fetchModeStr),
		FetcherConfig: fetcherCfg,
		IncludeMarkup: includeMarkup,
		SkipExtract:   noExtract,
	}, ext)
	if err != nil {
		logError("failed to create pipeline: %v", err)
		return err
	}
	defer func() { _ = p.Close() }()

	// Setup output
	outFile := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logError("failed to create output file: %v", err)
			return err
		}
		defer func() { _ = f.Close() }()
		outFile = f
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}
	writer, err := output.NewWriter(outFile, format)
	if err != nil {
		return err
	}

	results, err := p.Run(ctx)
	if err != nil {
		logError("run aborted: %v", err)
		return err
	}

	var failed int
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
		if err := writer.Write(res); err != nil {
			logError("failed to write result: %v", err)
			return err
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	logInfo("Done: %d carrier(s), %d failed", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d carrier(s) failed", failed)
	}
	return nil
}

// buildProvider resolves the LLM provider from flags, config, and
// environment, in that order.
func buildProvider() (llm.Provider, error) {
	name := viper.GetString("provider")
	apiKey := viper.GetString("api_key")

	if name == "" {
		detected, detectedKey := llm.DetectProvider()
		if detected == "" {
			return nil, fmt.Errorf("no LLM provider available: set an API key env var, run Ollama locally, or pass --provider")
		}
		name = detected
		if apiKey == "" {
			apiKey = detectedKey
		}
	}

	cfg := llm.DefaultProviderConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = viper.GetString("base_url")
	cfg.Model = viper.GetString("model")
	if cfg.Model == "" {
		cfg.Model = llm.GetDefaultModel(name)
	}
	return llm.NewProvider(name, cfg)
}
