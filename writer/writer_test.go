package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/harvestly/dircomb/models"
)

func record(i int) models.ContactRecord {
	return models.ContactRecord{
		FirstName: fmt.Sprintf("First%d", i),
		LastName:  fmt.Sprintf("Last%d", i),
		City:      "Springfield",
		State:     "IL",
		Zip:       "62704",
		Phone:     "(555) 123-4567",
		Email:     fmt.Sprintf("first%d@example.com", i),
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return rows
}

func TestWriter_CheckpointCadence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	w := New(path, 10)

	// Simulates a fatal error after 23 accumulated records: the last
	// checkpoint must hold the 20 records from the 10-record cadence.
	for i := 0; i < 23; i++ {
		if err := w.Append(record(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	rows := readRows(t, path)
	if len(rows) != 21 { // header + 20 records
		t.Fatalf("checkpoint holds %d rows, want 21", len(rows))
	}

	// The unconditional flush then persists the tail.
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	rows = readRows(t, path)
	if len(rows) != 24 {
		t.Fatalf("final flush holds %d rows, want 24", len(rows))
	}
}

func TestWriter_HeaderAndFieldOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	w := New(path, 10)

	rec := models.ContactRecord{
		FirstName:     "Jane",
		MiddleInitial: "Q",
		LastName:      `O'Doe, "JD"`,
		Address1:      "123 Main St",
		Address2:      "Suite 4",
		City:          "Springfield",
		State:         "IL",
		Zip:           "62704",
		Phone:         "(555) 123-4567",
		Email:         "jane@example.com",
	}
	if err := w.Append(rec); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	wantHeader := models.CSVHeader
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	wantFields := rec.Fields()
	for i, f := range wantFields {
		if rows[1][i] != f {
			t.Errorf("field[%d] = %q, want %q", i, rows[1][i], f)
		}
	}
}

func TestWriter_FlushOverwritesNotAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	w := New(path, 2)

	for i := 0; i < 6; i++ {
		if err := w.Append(record(i)); err != nil {
			t.Fatal(err)
		}
	}

	// Three checkpoints happened; the file must hold exactly one full
	// snapshot, not three concatenated ones.
	rows := readRows(t, path)
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7 (header + 6)", len(rows))
	}
}

func TestWriter_EmptyFlushWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	w := New(path, 10)

	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, path)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}

func TestWriter_BadCadenceFallsBack(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "c.csv"), 0)
	if w.flushEvery != 10 {
		t.Errorf("flushEvery = %d, want 10", w.flushEvery)
	}
}
