package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/planwatch/planwatch/internal/logger"
	"github.com/planwatch/planwatch/internal/output"
	"github.com/planwatch/planwatch/pkg/reduce"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Reduce a saved pricing page to minimal plan markup",
	Long: `Reduce a carrier pricing page to compact plan markup.

Reads raw HTML from a file (or stdin when --input is omitted), locates
the plan tiles with the carrier's page heuristics, deduplicates repeated
offers, and writes minimal HTML describing each plan.

Examples:
  # Reduce a saved Telus page
  planwatch reduce -c telus -i telus.html

  # Pipe from curl, print reduction stats
  curl -s https://www.freedommobile.ca/en-CA/plans | \
      planwatch reduce -c freedom --stats

  # Stats only, as JSON
  planwatch reduce -c bell -i bell.html --stats-format json`,
	RunE: runReduce,
}

func init() {
	rootCmd.AddCommand(reduceCmd)

	flags := reduceCmd.Flags()

	flags.StringP("carrier", "c", "", "carrier name (required): "+strings.Join(reduce.CarrierNames(), ", "))
	flags.StringP("input", "i", "", "input HTML file (default: stdin)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("stats", false, "print reduction stats to stderr")
	flags.String("stats-format", "", "write stats instead of markup: json, yaml")

	_ = reduceCmd.MarkFlagRequired("carrier")
}

func runReduce(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	carrierName, _ := cmd.Flags().GetString("carrier")
	carrier, err := reduce.ParseCarrier(carrierName)
	if err != nil {
		logError("%v (valid carriers: %s)", err, strings.Join(reduce.CarrierNames(), ", "))
		return err
	}

	// Read input
	var raw []byte
	if inPath, _ := cmd.Flags().GetString("input"); inPath != "" {
		raw, err = os.ReadFile(inPath) //#nosec G304 -- CLI tool reads user-specified input file
		if err != nil {
			logError("failed to read input: %v", err)
			return err
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			logError("failed to read stdin: %v", err)
			return err
		}
	}
	if len(raw) == 0 {
		return fmt.Errorf("empty input")
	}

	logger.Debug("reducing page", "carrier", carrier.String(), "input_bytes", len(raw))
	result := reduce.Reduce(string(raw), carrier)

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

	if statsFormatStr, _ := cmd.Flags().GetString("stats-format"); statsFormatStr != "" {
		format, err := output.ParseFormat(statsFormatStr)
		if err != nil {
			return err
		}
		writer, err := output.NewWriter(outFile, format)
		if err != nil {
			return err
		}
		if err := writer.Write(result.Stats); err != nil {
			return err
		}
		return writer.Flush()
	}

	if _, err := io.WriteString(outFile, result.Markup); err != nil {
		return err
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		logInfo("%s", result.Stats.String())
	}
	return nil
}
