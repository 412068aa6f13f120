package tabular

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := "Flight,Date,Gate\nQK100,2026-08-31,12\nQK200,2026-08-31\n"

	rows, err := ReadCSV(strings.NewReader(in), ReadOptions{SkipRows: 1})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[0].Cell(2); got != "12" {
		t.Errorf("rows[0].Cell(2) = %q, want %q", got, "12")
	}
	// Ragged second row: missing cell reads as empty, not a panic.
	if got := rows[1].Cell(2); got != "" {
		t.Errorf("rows[1].Cell(2) = %q, want empty", got)
	}
}

func TestReadCSV_SkipPastEnd(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("only,header\n"), ReadOptions{SkipRows: 1})
	if !errors.Is(err, ErrEmptySource) {
		t.Errorf("error = %v, want ErrEmptySource", err)
	}
}

func TestRead_UnsupportedExtension(t *testing.T) {
	_, err := Read("plan.pdf", strings.NewReader("x"), ReadOptions{})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestRowCell_OutOfRange(t *testing.T) {
	r := Row{"a"}
	if got := r.Cell(-1); got != "" {
		t.Errorf("Cell(-1) = %q, want empty", got)
	}
	if got := r.Cell(5); got != "" {
		t.Errorf("Cell(5) = %q, want empty", got)
	}
}
