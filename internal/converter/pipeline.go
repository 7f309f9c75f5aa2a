// =============================================================================
// ACH Decoder - Processing Pipeline
// =============================================================================
//
// The pipeline runs one Converter per input file on a bounded pool of
// goroutines (max_concurrency) and collects the results in input order.
//
// ERROR POLICY:
//   continue_on_error: true  - failures are recorded, other files continue
//   continue_on_error: false - the first failure cancels files not yet
//                              started; they report context.Canceled
//
// =============================================================================

package converter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/config"
	"github.com/ginjaninja78/ACH-decoder/pkg/utils"
)

// Pipeline processes a set of ACH files with one configuration.
type Pipeline struct {
	Config      *config.MainConfig
	Files       *utils.FileManager
	Transformer *Transformer
	DryRun      bool
	Logger      *zap.Logger
}

// NewPipeline builds a pipeline from a loaded configuration and creates the
// configured directories.
func NewPipeline(cfg *config.MainConfig, dryRun bool, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	transformer, err := NewTransformer(cfg.TransformationRules)
	if err != nil {
		return nil, fmt.Errorf("failed to build transformer: %w", err)
	}

	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir)
	files.ArchiveOnSuccess = cfg.ArchivesOnSuccess()
	files.UseTimestampSubdirs = cfg.ArchiveTimestampSubdirs
	if err := files.EnsureDirectories(); err != nil {
		return nil, err
	}

	return &Pipeline{
		Config:      cfg,
		Files:       files,
		Transformer: transformer,
		DryRun:      dryRun,
		Logger:      logger,
	}, nil
}

// Discover lists the input files matching the configured pattern.
func (p *Pipeline) Discover() ([]string, error) {
	return p.Files.DiscoverInputFiles(p.Config.InputPattern)
}

// Run processes paths concurrently. results[i] always belongs to paths[i].
// The returned error is the first failure when continue_on_error is off, or
// the context error if ctx ends first.
func (p *Pipeline) Run(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	limit := p.Config.MaxConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	stopOnError := !p.Config.ContinuesOnError()

	for i, path := range paths {
		g.Go(func() error {
			conv := New(path, p.Config, p.Transformer, p.Files, p.DryRun, p.Logger)
			results[i] = conv.Run(gctx)

			if r := results[i]; !r.Success {
				if errors.Is(r.Error, context.Canceled) || errors.Is(r.Error, context.DeadlineExceeded) {
					return nil
				}
				p.Logger.Error("file failed", zap.String("file", path), zap.Error(r.Error))
				if stopOnError {
					return r.Error
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

// =============================================================================
// REPORTING
// =============================================================================

// Summarize folds results into a processing summary.
func Summarize(runID string, start, end time.Time, results []Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if r.Success {
			summary.SuccessfulFiles++
			summary.TotalBatches += r.Stats.Batches
			summary.TotalEntries += r.Stats.Entries
			summary.TotalAddenda += r.Stats.Addenda
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   r.FilePath,
				OutputFile:  r.OutputFile,
				ArchivePath: r.ArchivePath,
				Batches:     r.Stats.Batches,
				Entries:     r.Stats.Entries,
				Addenda:     r.Stats.Addenda,
				ProcessTime: r.Stats.ProcessingTime,
			})
			continue
		}
		summary.FailedFiles++
		summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
			InputFile:    r.FilePath,
			ErrorMessage: errorMessage(r.Error),
		})
	}

	return summary
}

// ErrorLogEntries returns one entry per failed result. Structural decode
// errors carry the offending line index and record type.
func ErrorLogEntries(results []Result, at time.Time) []utils.ErrorLogEntry {
	var entries []utils.ErrorLogEntry
	for _, r := range results {
		if r.Success {
			continue
		}
		entry := utils.ErrorLogEntry{
			Timestamp:    at,
			FileName:     r.FilePath,
			ErrorType:    "processing",
			ErrorMessage: errorMessage(r.Error),
			LineIndex:    -1,
		}

		var decodeErr *ach.DecodeError
		switch {
		case errors.As(r.Error, &decodeErr):
			entry.ErrorType = "structural"
			entry.LineIndex = decodeErr.Line
			entry.RecordType = decodeErr.RecordType.String()
		case errors.Is(r.Error, context.Canceled):
			entry.ErrorType = "cancelled"
		}
		entries = append(entries, entry)
	}
	return entries
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
