package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/api"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/formatter"
	"github.com/yildizm/PneumoDetect/internal/logger"
	"github.com/yildizm/PneumoDetect/internal/media"
	"golang.org/x/sync/errgroup"
)

const defaultAnalyzeConcurrency = 4

var (
	analyzeConcurrency int
	analyzeOutputFile  string
	analyzeFailOnError bool
)

// submitter is the part of the API client the batch command needs
type submitter interface {
	Submit(ctx context.Context, img *media.Image) (*api.Submission, error)
}

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <image|dir>...",
		Short: "Analyze chest X-ray images without the interface",
		Long: `Send one or more chest X-ray images to the classification service and
print the results.

Directories are scanned recursively for files with the configured watch
extensions. Images are submitted in parallel; results keep argument order.
Images that cannot be read or analyzed are listed as failures.

Examples:
  pneumodetect analyze chest.jpeg
  pneumodetect analyze --concurrency 8 ./scans/
  pneumodetect analyze -o csv --output-file results.csv ./scans/`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().IntVar(&analyzeConcurrency, "concurrency", defaultAnalyzeConcurrency, "maximum parallel uploads")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")
	cmd.Flags().BoolVar(&analyzeFailOnError, "fail-on-error", false, "exit with an error if any image could not be analyzed")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := GetLogger("analyze")

	paths, err := NewImageCollector(cfg.Watch.Extensions, log).Collect(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no images found (extensions: %v)", cfg.Watch.Extensions)
	}

	client, err := newAPIClient(cfg)
	if err != nil {
		return err
	}

	log.Info("analyzing %d images against %s", len(paths), client.BaseURL())
	start := time.Now()

	report, err := analyzeImages(commandContext(cmd), client, paths, batchOptions{
		Concurrency: analyzeConcurrency,
		MaxFileSize: cfg.Upload.MaxFileSize,
		Log:         log,
	})
	if err != nil {
		return err
	}

	log.InfoWithFields("analysis complete", []logger.Field{
		logger.Count(len(report.Results)),
		logger.F("failures", len(report.Failures)),
		logger.Duration(time.Since(start)),
	})

	if err := writeReport(cmd, report, analyzeOutputFile); err != nil {
		return err
	}

	if analyzeFailOnError && len(report.Failures) > 0 {
		return fmt.Errorf("%d of %d images could not be analyzed", len(report.Failures), len(paths))
	}
	return nil
}

// batchOptions tune analyzeImages
type batchOptions struct {
	Concurrency int
	MaxFileSize int64
	Log         *logger.Logger
	Now         func() time.Time
	NewID       func() string
}

// outcome is the slot one image fills in the batch
type outcome struct {
	result  common.AnalysisResult
	failure *formatter.Failure
}

// analyzeImages submits every image with at most Concurrency uploads in
// flight. A failing image becomes a Failure and never stops the batch; only
// cancellation of ctx aborts it.
func analyzeImages(ctx context.Context, client submitter, paths []string, opts batchOptions) (*formatter.Report, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultAnalyzeConcurrency
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	outcomes := make([]outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			log := opts.Log.With(logger.Path(path))
			result, err := analyzeImage(gctx, client, path, opts)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.WarnWithFields("analysis failed", []logger.Field{logger.Error(err)})
				outcomes[i].failure = &formatter.Failure{Path: path, Error: err.Error()}
				return nil
			}

			log.DebugWithFields("analyzed", []logger.Field{logger.F("prediction", result.Prediction)})
			outcomes[i].result = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	report := &formatter.Report{
		Results:     []common.AnalysisResult{},
		GeneratedAt: opts.Now(),
	}
	for _, o := range outcomes {
		if o.failure != nil {
			report.Failures = append(report.Failures, *o.failure)
			continue
		}
		report.Results = append(report.Results, o.result)
	}
	return report, nil
}

// analyzeImage loads and submits one image
func analyzeImage(ctx context.Context, client submitter, path string, opts batchOptions) (common.AnalysisResult, error) {
	img, err := media.Load(path, opts.MaxFileSize)
	if err != nil {
		return common.AnalysisResult{}, err
	}

	submitted := opts.Now()
	sub, err := client.Submit(ctx, img)
	if err != nil {
		return common.AnalysisResult{}, err
	}

	result, err := sub.Result(opts.NewID(), submitted)
	if err != nil {
		return common.AnalysisResult{}, err
	}
	if result.ImagePath == "" {
		result.ImagePath = path
	}
	return result, nil
}

// writeReport formats the report in the configured format and writes it out
func writeReport(cmd *cobra.Command, report *formatter.Report, outputFile string) error {
	out := cmd.OutOrStdout()
	if outputFile != "" {
		// files never get escape codes
		out = nil
	}

	f, err := getFormatter(getOutputFormat(), out)
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(cmd, output, outputFile)
}

// handleOutputDestination writes output to file or stdout
func handleOutputDestination(cmd *cobra.Command, output []byte, outputFile string) error {
	if outputFile == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, outputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	GetLogger("analyze").Info("output saved to: %s", outputFile)
	return nil
}

// writeOutputBytesToFile writes output to a file, creating parent directories
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// #nosec G304 - the user chooses where output goes
	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			GetLogger("analyze").Warn("failed to close output file: %v", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
