// Package writer persists accumulated contact records as a CSV table with
// crash-resumable checkpointing. Every flush rewrites the whole file from
// the in-memory set, so the file on disk is always a complete, consistent
// snapshot as of the last flush.
package writer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/parser"
)

// Writer accumulates records in memory and flushes the full set at a fixed
// record-count cadence. It is independent of the browser layer and is not
// safe for concurrent use; the crawl is single-threaded by design.
type Writer struct {
	path       string
	flushEvery int
	records    []models.ContactRecord
}

// New creates a Writer targeting path, flushing automatically every
// flushEvery appended records. A cadence below 1 falls back to 10.
func New(path string, flushEvery int) *Writer {
	if flushEvery < 1 {
		flushEvery = 10
	}
	return &Writer{path: path, flushEvery: flushEvery}
}

// Append adds a record to the accumulated set, flushing the whole set when
// the checkpoint cadence is reached.
func (w *Writer) Append(rec models.ContactRecord) error {
	w.records = append(w.records, rec)
	if len(w.records)%w.flushEvery == 0 {
		return w.Flush()
	}
	return nil
}

// Count returns the number of accumulated records.
func (w *Writer) Count() int {
	return len(w.records)
}

// Flush rewrites the output file with the full accumulated set. The write
// goes through a temp file and rename, so a crash mid-flush leaves the
// previous complete snapshot intact rather than a half-written table.
func (w *Writer) Flush() error {
	var b strings.Builder
	writeRow(&b, models.CSVHeader)
	for _, rec := range w.records {
		writeRow(&b, rec.Fields())
	}

	tmp := w.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return models.NewCrawlError(models.ErrCodePersistence, "creating output directory", err)
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return models.NewCrawlError(models.ErrCodePersistence, "writing checkpoint", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return models.NewCrawlError(models.ErrCodePersistence, "replacing output file", err)
	}

	slog.Info("checkpoint flushed", "records", len(w.records), "path", w.path)
	return nil
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(parser.EscapeCSV(f))
	}
	b.WriteByte('\n')
}
