package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/executor"
	"github.com/specialistvlad/signalgrid/internal/signals"
)

// Signal table formats accepted by WriteDir.
const (
	FormatCSV   = "csv"
	FormatArrow = "arrow"
)

// ValidFormat reports whether f is a supported signal table format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case FormatCSV, FormatArrow:
		return true
	}
	return false
}

// WriteDir writes signals.<format>, trades.csv and summary.json into dir,
// creating it if needed, and returns the written paths.
func WriteDir(ctx context.Context, dir, format string, res *signals.Result, rep *executor.Report, sum RunSummary) ([]string, error) {
	if !ValidFormat(format) {
		return nil, fmt.Errorf("unsupported output format '%s'", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	format = strings.ToLower(format)
	writeSignals := WriteSignalsCSV
	if format == FormatArrow {
		writeSignals = WriteArrow
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"signals." + format, func(w io.Writer) error { return writeSignals(w, res) }},
		{"trades.csv", func(w io.Writer) error { return WriteTradesCSV(w, rep.Trades) }},
		{"summary.json", func(w io.Writer) error { return WriteSummaryJSON(w, sum) }},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	ctxlog.FromContext(ctx).Debug("Report written.", "dir", dir, "files", len(paths))
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
