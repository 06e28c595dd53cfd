package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"NewsReporter/internal/config"
	"NewsReporter/internal/domain"
	"NewsReporter/internal/ports"
)

// FileWriter persists each report as <prefix>_<YYYY-MM-DD>.md in the output
// directory. One file per calendar day; a same-day rerun overwrites it.
type FileWriter struct {
	outputDir  string
	filePrefix string
}

var _ ports.ReportWriter = (*FileWriter)(nil)

// NewFileWriter wires the output location from configuration.
func NewFileWriter(cfg config.ReportConfig) *FileWriter {
	return &FileWriter{
		outputDir:  cfg.OutputDir,
		filePrefix: cfg.FilePrefix,
	}
}

// Write stores the report with a generation timestamp header and returns the
// written path.
func (w *FileWriter) Write(ctx context.Context, run domain.ReportRun) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.md", w.filePrefix, run.Date.Format("2006-01-02"))
	path := filepath.Join(w.outputDir, name)

	content := fmt.Sprintf("Generated: %s\n\n%s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"), run.Report)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	return path, nil
}
