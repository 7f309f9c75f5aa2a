// =============================================================================
// ACH Decoder - Converter Module
// =============================================================================
//
// The converter runs the whole pipeline for a single ACH file, from reading
// the fixed-width input to writing the exported document.
//
// CONVERSION PIPELINE:
//   1. Read the input file
//   2. Decode it into the file / batch / entry / addenda tree
//   3. Apply transformation rules to a copy of the tree
//   4. Export the tree in the configured format
//   5. Write the output file (skipped on a dry run)
//   6. Archive the input and output files (skipped on a dry run)
//
// CONCURRENCY:
//   A Converter handles exactly one file and shares nothing mutable with
//   other converters, so the pipeline runs many of them at once.
//
// =============================================================================

package converter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/config"
	"github.com/ginjaninja78/ACH-decoder/internal/export"
	"github.com/ginjaninja78/ACH-decoder/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// OutputFile is the generated file. On a dry run it is the path that
	// would have been written. Empty if processing failed.
	OutputFile string

	// ArchivePath is where the input file was moved. Empty when archival is
	// disabled, failed or skipped.
	ArchivePath string

	Success bool

	// Error is nil on success.
	Error error

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	Batches int
	Entries int
	Addenda int

	// OutputBytes is the size of the exported document.
	OutputBytes int

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single ACH file.
type Converter struct {
	inputPath   string
	mainConfig  *config.MainConfig
	transformer *Transformer
	files       *utils.FileManager
	dryRun      bool
	logger      *zap.Logger
}

// New creates a Converter for inputPath. transformer may be nil.
func New(inputPath string, mainConfig *config.MainConfig, transformer *Transformer, files *utils.FileManager, dryRun bool, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		inputPath:   inputPath,
		mainConfig:  mainConfig,
		transformer: transformer,
		files:       files,
		dryRun:      dryRun,
		logger:      logger.With(zap.String("file", inputPath)),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file. A cancelled context
// stops the run before the input is read.
func (c *Converter) Run(ctx context.Context) (result Result) {
	startTime := time.Now()
	result.FilePath = c.inputPath
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	c.logger.Info("processing file")

	// =========================================================================
	// STEP 1-2: READ AND DECODE
	// =========================================================================

	data, err := os.ReadFile(c.inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	file, err := ach.DecodeBytes(data)
	if err != nil {
		result.Error = fmt.Errorf("failed to decode %s: %w", filepath.Base(c.inputPath), err)
		return result
	}

	stats := file.Stats()
	result.Stats.Batches = stats.Batches
	result.Stats.Entries = stats.Entries
	result.Stats.Addenda = stats.Addenda
	c.logger.Debug("decoded file",
		zap.Int("batches", stats.Batches),
		zap.Int("entries", stats.Entries),
		zap.Int("addenda", stats.Addenda),
		zap.Bool("file_header", stats.HasFileHeader),
		zap.Bool("file_control", stats.HasFileControl),
	)

	// =========================================================================
	// STEP 3: APPLY TRANSFORMATION RULES
	// =========================================================================

	if c.transformer != nil && !c.transformer.Empty() {
		file = c.transformer.Apply(file)
		c.logger.Debug("applied transformation rules")
	}

	// =========================================================================
	// STEP 4: EXPORT
	// =========================================================================

	format, err := export.ParseFormat(c.mainConfig.OutputFormat)
	if err != nil {
		result.Error = err
		return result
	}

	var buf bytes.Buffer
	opts := export.Options{Indent: c.mainConfig.IndentOutput, Trim: c.mainConfig.TrimValues}
	if err := export.Write(&buf, file, format, opts); err != nil {
		result.Error = fmt.Errorf("failed to export: %w", err)
		return result
	}
	result.Stats.OutputBytes = buf.Len()

	// =========================================================================
	// STEP 5: WRITE OUTPUT FILE
	// =========================================================================

	outputPath := filepath.Join(c.mainConfig.OutputDir, c.outputFileName(format))
	result.OutputFile = outputPath

	if c.dryRun {
		c.logger.Info("dry run, output not written", zap.String("output", outputPath))
		result.Success = true
		return result
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		result.OutputFile = ""
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}
	c.logger.Info("wrote output", zap.String("output", outputPath), zap.Int("bytes", buf.Len()))

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================
	// Archive failures are logged but do not fail the file.

	if c.files != nil {
		archived, err := c.files.ArchiveInputFile(c.inputPath)
		if err != nil {
			c.logger.Warn("failed to archive input", zap.Error(err))
		} else if archived != c.inputPath {
			result.ArchivePath = archived
		}
		if _, err := c.files.ArchiveOutputFile(outputPath); err != nil {
			c.logger.Warn("failed to archive output", zap.Error(err))
		}
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// outputFileName expands OutputNameFormat for this input. A name without an
// extension gets the format's extension.
func (c *Converter) outputFileName(format export.Format) string {
	name := utils.GenerateOutputFileName(c.mainConfig.OutputNameFormat, map[string]string{
		"original": utils.BaseName(c.inputPath),
		"format":   format.Extension(),
	})
	if filepath.Ext(name) == "" {
		name += "." + format.Extension()
	}
	return name
}
