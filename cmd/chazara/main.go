// Package main provides the CLI entry point for chazara-go.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/chazara-go/internal/config"
	"github.com/ukaji3/chazara-go/internal/logger"
	"github.com/ukaji3/chazara-go/internal/server"
	"github.com/ukaji3/chazara-go/pkg/chazara"
	"github.com/ukaji3/chazara-go/pkg/chazara/corpus"
	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"golang.org/x/sync/errgroup"
)

var (
	corpusName  string
	startUnit   int
	startSub    string
	endUnit     int
	endSub      string
	granularity string
	reviews     int
	columns     int
	startDate   string
	dateLocale  string
	noDate      bool
	hebrew      bool
	format      string
	outDir      string
	parallel    int
	pretty      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chazara",
		Short: "Generate printable review charts for Torah study",
		Long: `chazara-go builds review (chazara) charts for Gemara, Mishnayot and
Mishna Berura as Excel workbooks or PDF documents.`,
		SilenceUsage: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chart generation HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	generateCmd := &cobra.Command{
		Use:   "generate [content-id...]",
		Short: "Write one chart file per content id",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&corpusName, "corpus", "gemara", "Corpus: gemara, mishnayot, mishna-berura")
	generateCmd.Flags().IntVar(&startUnit, "start", 0, "First unit (default: start of the content)")
	generateCmd.Flags().StringVar(&startSub, "start-sub", "", "First sub-unit: a or b")
	generateCmd.Flags().IntVar(&endUnit, "end", 0, "Last unit (default: end of the content)")
	generateCmd.Flags().StringVar(&endSub, "end-sub", "", "Last sub-unit: a or b")
	generateCmd.Flags().StringVar(&granularity, "granularity", "", "Row granularity: sub-unit or whole-unit")
	generateCmd.Flags().IntVar(&reviews, "reviews", 0, "Number of review columns (default from config)")
	generateCmd.Flags().IntVar(&columns, "columns", 0, "Column blocks per page (default from config)")
	generateCmd.Flags().StringVar(&startDate, "start-date", "", "Date of the first row, YYYY-MM-DD (default: today)")
	generateCmd.Flags().StringVar(&dateLocale, "date-locale", "", "Date locale: en-US, en-GB, he")
	generateCmd.Flags().BoolVar(&noDate, "no-date", false, "Omit the date column")
	generateCmd.Flags().BoolVar(&hebrew, "hebrew", false, "Label units with Hebrew numerals")
	generateCmd.Flags().StringVarP(&format, "format", "f", "", "Output format: excel or pdf (default from config)")
	generateCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	generateCmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "Maximum charts rendered at once")

	inspectCmd := &cobra.Command{
		Use:   "inspect [chart.xlsx|chart.pdf]",
		Short: "Read a generated chart back and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(serveCmd, generateCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *logger.Logger, *chazara.Generator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	catalog, err := corpus.Default()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load corpus tables: %w", err)
	}
	gen, err := chazara.New(cfg.Settings(), catalog, log.Zap())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return cfg, log, gen, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, gen, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.HTTP, gen, log).Run(ctx)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_, log, gen, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for _, id := range args {
		req := buildRequest(cmd, id)
		g.Go(func() error {
			return writeChart(ctx, gen, req, log)
		})
	}
	return g.Wait()
}

// buildRequest maps flags onto a request; unset flags stay nil so configured defaults apply.
func buildRequest(cmd *cobra.Command, id string) models.ChartRequest {
	req := models.ChartRequest{
		Corpus:      corpusName,
		ContentIDs:  []string{id},
		StartUnit:   models.FlexInt(startUnit),
		StartSub:    models.SubUnit(startSub),
		EndUnit:     models.FlexInt(endUnit),
		EndSub:      models.SubUnit(endSub),
		Granularity: models.Granularity(granularity),
		StartDate:   startDate,
		DateLocale:  dateLocale,
		Format:      models.Format(format),
	}
	flags := cmd.Flags()
	if flags.Changed("reviews") {
		n := models.FlexInt(reviews)
		req.ReviewCount = &n
	}
	if flags.Changed("columns") {
		n := models.FlexInt(columns)
		req.ColumnsPerPage = &n
	}
	if flags.Changed("no-date") {
		include := !noDate
		req.IncludeDateColumn = &include
	}
	if flags.Changed("hebrew") {
		req.UseAlternateNumerals = &hebrew
	}
	return req
}

func writeChart(ctx context.Context, gen *chazara.Generator, req models.ChartRequest, log *logger.Logger) error {
	artifact, err := gen.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", req.ContentIDs[0], err)
	}
	path := filepath.Join(outDir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("chart written", "path", path, "bytes", len(artifact.Data))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	result, err := chazara.Inspect(args[0])
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(result, "", "  ")
	} else {
		jsonData, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
