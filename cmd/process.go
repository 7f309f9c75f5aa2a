// =============================================================================
// ACH Decoder - Process Command
// =============================================================================
//
// COMMAND USAGE:
//   achdecoder process [flags]
//
// FLAGS:
//   --dry-run : Decode and export without writing or archiving anything
//   --file    : Process only this file instead of scanning input_dir
//
// PROCESSING PIPELINE:
//   1. Load config.yaml
//   2. Discover ACH files in the input directory (input_pattern)
//   3. For each file (concurrently, up to max_concurrency):
//      a. Decode the fixed-width records
//      b. Apply transformation rules
//      c. Export in output_format
//      d. Write the output file and archive the input
//   4. Write the processing summary and error log
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ACH-decoder/internal/config"
	"github.com/ginjaninja78/ACH-decoder/internal/converter"
	"github.com/ginjaninja78/ACH-decoder/pkg/utils"
)

// dryRun simulates processing without writing output files.
var dryRun bool

// filePath restricts the run to a single file.
var filePath string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Decode every ACH file in the input directory",
	Long: `The process command scans the input directory for ACH files, decodes each
one, applies the configured transformation rules and writes the export to the
output directory.

Files are processed concurrently. By default an error in one file does not
stop the others (continue_on_error).

On successful processing:
  - The export is placed in the output directory
  - The original ACH file is moved to the input archive
  - A copy of the export goes to the output archive

On error:
  - The failure is recorded in an error log in the output directory
  - The original ACH file remains in the input directory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing output files",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	// The pipeline creates the configured directories, which log_file may
	// point into, so it is built before the logger.
	pipeline, err := converter.NewPipeline(mainConfig, dryRun, nil)
	if err != nil {
		return err
	}

	runLogger, err := buildLogger(parseLevel(mainConfig.LogLevel), mainConfig.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer runLogger.Sync()

	runID := utils.NewRunID()
	runLogger = runLogger.With(zap.String("run_id", runID))
	pipeline.Logger = runLogger

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("input file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = pipeline.Discover()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No ACH files found in the input directory.")
		return nil
	}

	runLogger.Info("starting run",
		zap.Int("files", len(inputFiles)),
		zap.Int("max_concurrency", mainConfig.MaxConcurrency),
		zap.String("format", mainConfig.OutputFormat),
		zap.Bool("dry_run", dryRun),
	)

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results, runErr := pipeline.Run(cmd.Context(), inputFiles)

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			fmt.Fprintf(out, "  ✓ %s -> %s (%d batches, %d entries, %d addenda)\n",
				name, filepath.Base(result.OutputFile),
				result.Stats.Batches, result.Stats.Entries, result.Stats.Addenda)
		} else {
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
		}
	}

	// =========================================================================
	// STEP 4: SUMMARY AND ERROR LOG
	// =========================================================================

	endTime := time.Now()
	summary := converter.Summarize(runID, startTime, endTime, results)

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", endTime.Sub(startTime))

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			runLogger.Warn("failed to write summary log", zap.Error(err))
		} else {
			runLogger.Info("wrote summary log", zap.String("path", summaryPath))
		}

		errorLogPath, err := utils.WriteErrorLog(converter.ErrorLogEntries(results, endTime), mainConfig.OutputDir)
		if err != nil {
			runLogger.Warn("failed to write error log", zap.Error(err))
		} else if errorLogPath != "" {
			fmt.Fprintf(out, "\nErrors have been logged to %s\n", errorLogPath)
		}
	}

	if runErr != nil {
		return fmt.Errorf("run stopped: %w", runErr)
	}
	return nil
}
