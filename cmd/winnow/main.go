package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"winnow/internal/app"
	"winnow/internal/config"
	"winnow/internal/counter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var warnColor = color.New(color.FgYellow)

// loadFileConfig reads the TOML config named by --config, or the default
// winnow.toml in the working directory when the flag is unset.
func loadFileConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// buildBaseConfig fills the fields shared by every subcommand. Flags set on
// the command line take precedence over the config file.
func buildBaseConfig(cmd *cobra.Command, args []string, file *config.File) app.Config {
	idColumn, _ := cmd.Flags().GetString("id-column")
	textColumn, _ := cmd.Flags().GetString("text-column")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	if !cmd.Flags().Changed("id-column") && file.Columns.ID != "" {
		idColumn = file.Columns.ID
	}
	if !cmd.Flags().Changed("text-column") && file.Columns.Text != "" {
		textColumn = file.Columns.Text
	}

	// single positional argument is the source; stdin when omitted
	source := "-"
	if len(args) > 0 {
		source = args[0]
	}

	return app.Config{
		Source:     source,
		IDColumn:   idColumn,
		TextColumn: textColumn,
		Quiet:      quiet,
		Debug:      debug,
	}
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// writeResult emits the output table as CSV to stdout or the --output file,
// and reports skipped rows on stderr.
func writeResult(cmd *cobra.Command, result *app.Result) error {
	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := result.Table.WriteCSV(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	if result.SkippedRows > 0 && !quiet {
		warnColor.Fprintf(os.Stderr, "Skipped %d malformed row(s)\n", result.SkippedRows)
	}
	return nil
}

func runCommand(cmd *cobra.Command, cfg app.Config) error {
	setupLogger(cfg.Debug)

	// create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := app.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("winnow failed: %w", err)
	}

	return writeResult(cmd, result)
}

var rootCmd = &cobra.Command{
	Use:   "winnow",
	Short: "Keyword classification and metrics for tabular text",
	Long: `Winnow labels short-form text with keyword dictionaries and computes
per-record classifier metrics. Input is CSV from a file, URL, or standard
input; output is CSV on standard output.

Examples:
  winnow classify --text-column Statement posts.csv
  winnow classify --records --dict brands.yaml posts.csv
  cat posts.csv | winnow metrics --id-column ID --classifiers urgent,exclusive`,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [source]",
	Short: "Label text with keyword dictionaries",
	Long: `Classify splits each text cell into sentence units and labels every unit
with the first matching dictionary category. With --records, rows are kept
whole and one-hot indicator columns are added per category instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := loadFileConfig(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		cfg := buildBaseConfig(cmd, args, file)

		cfg.Dictionary, _ = cmd.Flags().GetString("dict")
		cfg.WindowSize, _ = cmd.Flags().GetInt("window")
		cfg.Hashtags, _ = cmd.Flags().GetBool("hashtags")
		cfg.MultiLabel, _ = cmd.Flags().GetBool("multi-label")
		cfg.WholeWord, _ = cmd.Flags().GetBool("whole-word")
		cfg.StripHTML, _ = cmd.Flags().GetBool("strip-html")

		if !cmd.Flags().Changed("dict") && file.Dictionary.Path != "" {
			cfg.Dictionary = file.Dictionary.Path
		}
		if !cmd.Flags().Changed("window") {
			cfg.WindowSize = file.Classify.Window
		}
		if !cmd.Flags().Changed("hashtags") && file.Classify.Hashtags {
			cfg.Hashtags = true
		}
		if !cmd.Flags().Changed("whole-word") && file.Classify.WholeWord {
			cfg.WholeWord = true
		}

		cfg.Mode = app.ClassifyStatements
		if records, _ := cmd.Flags().GetBool("records"); records {
			cfg.Mode = app.ClassifyRecords
		}

		return runCommand(cmd, cfg)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics [source]",
	Short: "Compute classifier metrics per statement or per record",
	Long: `Metrics reads numeric or boolean classifier columns and either synthesizes
per-statement scores or aggregates them into per-record ratios, word counts,
and percentages. Aggregation is the default; use --statements for row-level
scores.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := loadFileConfig(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		cfg := buildBaseConfig(cmd, args, file)

		cfg.Classifiers, _ = cmd.Flags().GetStringSlice("classifiers")
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
		cfg.SkipMalformed, _ = cmd.Flags().GetBool("skip-malformed")

		if !cmd.Flags().Changed("classifiers") && len(file.Columns.Classifiers) > 0 {
			cfg.Classifiers = file.Columns.Classifiers
		}

		methodName, _ := cmd.Flags().GetString("count-method")
		method, ok := counter.ParseMethod(methodName)
		if !ok {
			return fmt.Errorf("unknown counting method %q", methodName)
		}
		cfg.CountingMethod = method

		cfg.Mode = app.MetricsAggregate
		if statements, _ := cmd.Flags().GetBool("statements"); statements {
			cfg.Mode = app.MetricsStatements
		}

		return runCommand(cmd, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default: winnow.toml if present)")
	rootCmd.PersistentFlags().String("id-column", "", "Column identifying the record a row belongs to")
	rootCmd.PersistentFlags().String("text-column", "Statement", "Column holding the text to process")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Write output CSV to file instead of stdout")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and status messages")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	classifyCmd.Flags().StringP("dict", "d", "", "Dictionary file (JSON or YAML); built-in marketing dictionaries when omitted")
	classifyCmd.Flags().IntP("window", "w", 0, "Neighbor sentences on each side to include as matching context")
	classifyCmd.Flags().Bool("hashtags", false, "Treat #hashtag tokens as sentence boundaries")
	classifyCmd.Flags().Bool("multi-label", false, "Report every matching category instead of the first")
	classifyCmd.Flags().Bool("whole-word", false, "Match phrases at word boundaries only")
	classifyCmd.Flags().Bool("strip-html", false, "Strip HTML markup from text cells before processing")
	classifyCmd.Flags().Bool("statements", false, "One output row per sentence unit (default)")
	classifyCmd.Flags().Bool("records", false, "Keep rows whole and add one-hot category columns")
	classifyCmd.MarkFlagsMutuallyExclusive("statements", "records")

	metricsCmd.Flags().StringSliceP("classifiers", "c", nil, "Classifier columns to score")
	metricsCmd.Flags().Bool("statements", false, "Synthesize a score per input row")
	metricsCmd.Flags().Bool("aggregate", false, "Aggregate scores per record (default)")
	metricsCmd.MarkFlagsMutuallyExclusive("statements", "aggregate")
	metricsCmd.Flags().Int64("seed", 0, "Random seed for score synthesis (0 seeds from the clock)")
	metricsCmd.Flags().String("count-method", "words", "Word count method: words, characters, or tokens")
	metricsCmd.Flags().Bool("skip-malformed", false, "Skip rows with malformed classifier values instead of failing")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
