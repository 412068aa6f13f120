// Package source maps raw spreadsheet rows into normalized records. Each
// adapter owns a fixed positional column mapping for one export format;
// the exports have no reliable header names, so fields are located by
// column index only.
package source

import (
	"fmt"
	"time"

	"gatecheck/internal/tabular"
)

// FlightRecord is one flight leg in the common shape both gate sources
// reduce to. Date is "2006-01-02" text, or empty when the source had no
// parseable date for the row.
type FlightRecord struct {
	Flight string `json:"flight"`
	Date   string `json:"date"`
	Gate   string `json:"gate"`
}

// FeedRow carries the extra FIDS columns the static rule checks need
// alongside the reconciliation fields. Gate is kept raw here; each rule
// applies its own numeric coercion.
type FeedRow struct {
	Flight   string `json:"flight"`
	Gate     string `json:"gate"`
	Aircraft string `json:"aircraft,omitempty"`
	Airport  string `json:"airport,omitempty"`
}

// TurnRow is one aircraft's full turnaround from the turnaround schedule
// export. Day fields are literal day-of-month tokens relative to the
// batch, not absolute dates.
type TurnRow struct {
	Tail        string
	ArrFlight   string
	ArrGate     string
	ArrDay      string
	DepFlight   string
	DepGate     string
	DepDay      string
	DepTime     string
	TurnMinutes int
}

// ColumnRef binds one source column index to a canonical field name.
type ColumnRef struct {
	Index    int    `yaml:"index"`
	Field    string `yaml:"field"`
	Required bool   `yaml:"required"`
}

// Projection is a declarative per-source column mapping.
type Projection []ColumnRef

// Validate checks every required column index against the widest row of
// the batch. A required index beyond every row means the upload is the
// wrong export entirely, which is a source-level failure rather than
// per-row noise.
func (p Projection) Validate(rows []tabular.Row) error {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for _, c := range p {
		if c.Required && c.Index >= width {
			return fmt.Errorf("source: required column %q (index %d) not present (widest row has %d cells)", c.Field, c.Index, width)
		}
	}
	return nil
}

// Project selects the mapped cells of one row by field name. Cells beyond
// the row's length read as empty; exports drop trailing empties.
func (p Projection) Project(row tabular.Row) map[string]string {
	out := make(map[string]string, len(p))
	for _, c := range p {
		out[c.Field] = row.Cell(c.Index)
	}
	return out
}

// DateLayout is the canonical date text used on FlightRecord.
const DateLayout = "2006-01-02"

// feedDateLayouts are tried in order against the FIDS date column. The
// export format has drifted over time.
var feedDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"02-Jan-06",
}

func parseFeedDate(raw string) string {
	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return ""
}
