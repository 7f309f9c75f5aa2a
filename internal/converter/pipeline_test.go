package converter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/ginjaninja78/ACH-decoder/internal/ach"
	"github.com/ginjaninja78/ACH-decoder/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// copyFixture writes testdata/name into dir under a new name.
func copyFixture(t *testing.T, name, dir, as string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	path := filepath.Join(dir, as)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 2
	for i, name := range []string{"a.ach", "b.ach", "c.ach", "d.ach"} {
		fixture := "sample.ach"
		if i == 2 {
			fixture = "orphan_control.ach"
		}
		copyFixture(t, fixture, cfg.InputDir, name)
	}

	p, err := NewPipeline(cfg, false, zap.NewNop())
	require.NoError(t, err)

	paths, err := p.Discover()
	require.NoError(t, err)
	require.Len(t, paths, 4)

	results, err := p.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 4)

	var got []string
	for _, r := range results {
		got = append(got, filepath.Base(r.FilePath))
	}
	if diff := cmp.Diff([]string{"a.ach", "b.ach", "c.ach", "d.ach"}, got); diff != "" {
		t.Errorf("result order mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success)
	assert.True(t, results[3].Success)

	remaining, err := p.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(cfg.InputDir, "c.ach")}, remaining)
}

func TestPipelineStopOnError(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConcurrency = 1
	stop := false
	cfg.ContinueOnError = &stop

	paths := []string{
		copyFixture(t, "orphan_control.ach", cfg.InputDir, "a.ach"),
		copyFixture(t, "sample.ach", cfg.InputDir, "b.ach"),
		copyFixture(t, "sample.ach", cfg.InputDir, "c.ach"),
	}

	p, err := NewPipeline(cfg, false, nil)
	require.NoError(t, err)

	results, err := p.Run(context.Background(), paths)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ach.ErrBatchControlWithoutHeader))

	require.Len(t, results, 3)
	assert.False(t, results[0].Success)
	for _, r := range results[1:] {
		assert.False(t, r.Success)
		assert.ErrorIs(t, r.Error, context.Canceled)
	}
}

func TestPipelineDryRunKeepsInputs(t *testing.T) {
	cfg := testConfig(t, "sample.ach")

	p, err := NewPipeline(cfg, true, nil)
	require.NoError(t, err)
	paths, err := p.Discover()
	require.NoError(t, err)

	results, err := p.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	out, err := os.ReadDir(cfg.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, out)

	remaining, err := p.Discover()
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestNewPipelineCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &config.MainConfig{
		InputDir:                filepath.Join(root, "in"),
		OutputDir:               filepath.Join(root, "out"),
		InputArchiveDir:         filepath.Join(root, "archive", "in"),
		OutputArchiveDir:        filepath.Join(root, "archive", "out"),
		OutputNameFormat:        "{original}.{format}",
		ArchiveTimestampSubdirs: true,
	}
	config.ApplyDefaults(cfg)

	p, err := NewPipeline(cfg, false, nil)
	require.NoError(t, err)
	assert.True(t, p.Files.UseTimestampSubdirs)
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir, cfg.OutputArchiveDir} {
		assert.DirExists(t, dir)
	}

	input := copyFixture(t, "sample.ach", cfg.InputDir, "dated.ach")
	results, err := p.Run(context.Background(), []string{input})
	require.NoError(t, err)
	require.True(t, results[0].Success)

	dated := regexp.MustCompile(`^\d{4}/\d{2}/\d{2}/`)
	rel, err := filepath.Rel(cfg.InputArchiveDir, results[0].ArchivePath)
	require.NoError(t, err)
	assert.Regexp(t, dated, filepath.ToSlash(rel))
	assert.Equal(t, "dated.ach", filepath.Base(rel))

	outputs, err := filepath.Glob(filepath.Join(cfg.OutputArchiveDir, "*", "*", "*", "dated.json"))
	require.NoError(t, err)
	assert.Len(t, outputs, 1)
}

func TestNewPipelineFlatArchiveByDefault(t *testing.T) {
	cfg := testConfig(t, "sample.ach")
	cfg.OutputNameFormat = "{original}.{format}"

	p, err := NewPipeline(cfg, false, nil)
	require.NoError(t, err)
	assert.False(t, p.Files.UseTimestampSubdirs)

	results, err := p.Run(context.Background(), []string{filepath.Join(cfg.InputDir, "sample.ach")})
	require.NoError(t, err)
	require.True(t, results[0].Success)
	assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "sample.ach"), results[0].ArchivePath)
	assert.FileExists(t, filepath.Join(cfg.OutputArchiveDir, "sample.json"))
}

func TestNewPipelineRejectsBadRules(t *testing.T) {
	cfg := testConfig(t)
	cfg.TransformationRules = []config.TransformationRule{
		{Field: "amount", Actions: []config.TransformationAction{{Type: "reverse"}}},
	}
	_, err := NewPipeline(cfg, false, nil)
	assert.Error(t, err)
}

func TestSummarizeAndErrorLog(t *testing.T) {
	decodeErr := &ach.DecodeError{Line: 4, RecordType: ach.Addenda, Err: ach.ErrAddendaWithoutEntry}
	results := []Result{
		{FilePath: "a.ach", OutputFile: "a.json", Success: true, Stats: ProcessingStats{Batches: 2, Entries: 3, Addenda: 3}},
		{FilePath: "b.ach", Error: decodeErr},
		{FilePath: "c.ach", Error: context.Canceled},
		{FilePath: "d.ach", Success: true, Stats: ProcessingStats{Batches: 1, Entries: 1}},
	}

	start := time.Now()
	summary := Summarize("run-1", start, start.Add(time.Second), results)
	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, 2, summary.SuccessfulFiles)
	assert.Equal(t, 2, summary.FailedFiles)
	assert.Equal(t, 3, summary.TotalBatches)
	assert.Equal(t, 4, summary.TotalEntries)
	assert.Equal(t, 3, summary.TotalAddenda)
	assert.Len(t, summary.ProcessedFiles, 2)

	entries := ErrorLogEntries(results, start)
	require.Len(t, entries, 2)
	assert.Equal(t, "structural", entries[0].ErrorType)
	assert.Equal(t, 4, entries[0].LineIndex)
	assert.Equal(t, "addenda", entries[0].RecordType)
	assert.Equal(t, "cancelled", entries[1].ErrorType)
	assert.Equal(t, -1, entries[1].LineIndex)
}
