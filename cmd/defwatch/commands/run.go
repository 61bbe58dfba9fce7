package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/defwatch/defwatch/internal/classify"
	"github.com/defwatch/defwatch/internal/config"
	"github.com/defwatch/defwatch/internal/dedupe"
	"github.com/defwatch/defwatch/internal/extract"
	"github.com/defwatch/defwatch/internal/fetch"
	"github.com/defwatch/defwatch/internal/harvest"
	"github.com/defwatch/defwatch/internal/logger"
	"github.com/defwatch/defwatch/internal/output"
	"github.com/defwatch/defwatch/internal/report"
)

// runOptions holds the validated per-run parameters.
type runOptions struct {
	DaysBack  int           `validate:"min=1,max=30"`
	OutputDir string        `validate:"required"`
	Format    output.Format `validate:"oneof=markdown json yaml"`
	Search    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Harvest feeds once and write a report",
	Long: `Run a single harvest over the configured feeds and write the
report artifact to the output directory.

The command exits 0 on any completed run, including one that found zero
articles. It exits non-zero only when no feed was reachable at all; an
error report is still written in that case so callers have an artifact
to inspect.`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addRunFlags(runCmd)
}

// addRunFlags registers the harvest flags shared by run and schedule.
func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntP("days", "d", 7, "days to look back (1-30)")
	flags.StringP("output-dir", "o", ".", "directory for the report artifact")
	flags.String("format", "markdown", "artifact format: markdown, json, yaml")
	flags.IntP("concurrency", "c", 0, "concurrent feed fetches (0 = config default, 1 = sequential)")
	flags.Duration("run-timeout", 0, "overall wall-clock budget for the run (0 = config default)")
	flags.String("max-content", "", "max extracted article length (e.g. 4KB, 0 = unlimited)")
	flags.Bool("search", false, "also harvest Google News search results")
	flags.Bool("validate-feeds", false, "probe feeds before harvesting and promote backups for broken ones")
}

func runOnce(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg, opts, err := loadRunConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return executeRun(ctx, cfg, opts)
}

// loadRunConfig resolves the file config plus flag overrides into an
// immutable config value and validated run options.
func loadRunConfig(cmd *cobra.Command) (config.Config, runOptions, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return cfg, runOptions{}, err
	}

	days, _ := cmd.Flags().GetInt("days")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	format, _ := cmd.Flags().GetString("format")
	search, _ := cmd.Flags().GetBool("search")

	opts := runOptions{
		DaysBack:  days,
		OutputDir: outputDir,
		Format:    output.Format(format),
		Search:    search,
	}
	if err := config.Validate(opts); err != nil {
		return cfg, opts, fmt.Errorf("invalid run options: %w", err)
	}

	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 {
		cfg.Harvest.Concurrency = concurrency
	}
	if runTimeout, _ := cmd.Flags().GetDuration("run-timeout"); runTimeout > 0 {
		cfg.Harvest.RunTimeout = runTimeout
	}
	if maxContent, _ := cmd.Flags().GetString("max-content"); maxContent != "" {
		size, err := humanize.ParseBytes(maxContent)
		if err != nil {
			return cfg, opts, fmt.Errorf("invalid max-content: %w", err)
		}
		cfg.Harvest.MaxContentLength = int(size)
	}
	if search {
		cfg.Search.Enabled = true
	}
	if validate, _ := cmd.Flags().GetBool("validate-feeds"); validate {
		cfg.Harvest.ValidateFeeds = true
	}

	return cfg, opts, nil
}

// executeRun is the run-once pipeline: harvest, dedupe, render, write.
// The schedule command reuses it for each tick.
func executeRun(ctx context.Context, cfg config.Config, opts runOptions) error {
	runCtx, cancel := context.WithTimeout(ctx, cfg.Harvest.RunTimeout)
	defer cancel()

	client := fetch.New(cfg.Fetch)
	classifier := classify.New(cfg)
	extractor := extract.New(client, cfg.Harvest.MaxContentLength)
	harvester := harvest.New(cfg, client, classifier, extractor)
	renderer := report.New(cfg)

	started := time.Now()
	articles, stats := harvester.Harvest(runCtx, opts.DaysBack)
	articles = dedupe.New(cfg.Dedupe).Dedupe(articles)

	rendered := renderer.Render(articles, opts.DaysBack, started)

	path, writeErr := writeArtifact(opts, output.Document{
		GeneratedAt: started,
		DaysBack:    opts.DaysBack,
		Total:       len(articles),
		Articles:    articles,
		Report:      rendered,
	})
	if writeErr != nil {
		logError("failed to write report: %v", writeErr)
		return writeErr
	}
	logInfo("Report saved to: %s (%d articles)", path, len(articles))

	if stats.FeedsAttempted > 0 && stats.FeedsReachable == 0 {
		err := fmt.Errorf("no feeds reachable (%d attempted)", stats.FeedsAttempted)
		logError("%v", err)
		return err
	}

	return nil
}

// writeArtifact writes the report document to the output directory and
// returns the artifact path.
func writeArtifact(opts runOptions, doc output.Document) (string, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(opts.OutputDir, output.Filename(opts.Format, doc.GeneratedAt, doc.DaysBack))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w, err := output.NewWriter(f, opts.Format)
	if err != nil {
		return "", err
	}
	if err := w.Write(doc); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
