package source

import (
	"strings"

	"gatecheck/internal/normalize"
	"gatecheck/internal/tabular"
)

// FeedColumns is the positional layout of the AC FIDS export. Aircraft and
// Airport are optional; set to -1 when the export variant lacks them.
type FeedColumns struct {
	Flight   int `yaml:"flight"`
	Date     int `yaml:"date"`
	Gate     int `yaml:"gate"`
	Aircraft int `yaml:"aircraft"`
	Airport  int `yaml:"airport"`
}

// DefaultFeedColumns matches the current AC FIDS export.
func DefaultFeedColumns() FeedColumns {
	return FeedColumns{Flight: 0, Date: 2, Gate: 5, Aircraft: 6, Airport: 7}
}

// FeedAdapter turns FIDS rows into FlightRecords for reconciliation and
// FeedRows for the static rule checks.
type FeedAdapter struct {
	Columns FeedColumns
	Aliases normalize.Aliases
}

func (a FeedAdapter) projection() Projection {
	p := Projection{
		{Index: a.Columns.Flight, Field: "flight", Required: true},
		{Index: a.Columns.Date, Field: "date"},
		{Index: a.Columns.Gate, Field: "gate", Required: true},
	}
	if a.Columns.Aircraft >= 0 {
		p = append(p, ColumnRef{Index: a.Columns.Aircraft, Field: "aircraft"})
	}
	if a.Columns.Airport >= 0 {
		p = append(p, ColumnRef{Index: a.Columns.Airport, Field: "airport"})
	}
	return p
}

// Records maps the feed rows into FlightRecords. Rows lacking a flight or
// a gate are dropped; an unparseable date leaves Date empty, which only
// matches under the flight-only join strategy.
func (a FeedAdapter) Records(rows []tabular.Row) ([]FlightRecord, error) {
	proj := a.projection()
	if err := proj.Validate(rows); err != nil {
		return nil, err
	}

	var out []FlightRecord
	for _, row := range rows {
		f := proj.Project(row)

		flight := a.Aliases.FlightID(f["flight"])
		if strings.TrimSpace(flight) == "" {
			continue
		}
		gate := normalize.Gate(f["gate"])
		if gate == normalize.UnknownGate {
			continue
		}

		out = append(out, FlightRecord{
			Flight: flight,
			Date:   parseFeedDate(strings.TrimSpace(f["date"])),
			Gate:   gate,
		})
	}
	return out, nil
}

// RuleRows maps the feed rows for the static rule checks, keeping the raw
// gate label and the aircraft/airport text. Rows without a flight or gate
// are dropped the same way Records drops them, so the two flows see the
// same population.
func (a FeedAdapter) RuleRows(rows []tabular.Row) ([]FeedRow, error) {
	proj := a.projection()
	if err := proj.Validate(rows); err != nil {
		return nil, err
	}

	var out []FeedRow
	for _, row := range rows {
		f := proj.Project(row)

		flight := a.Aliases.FlightID(f["flight"])
		if strings.TrimSpace(flight) == "" {
			continue
		}
		if strings.TrimSpace(f["gate"]) == "" {
			continue
		}

		out = append(out, FeedRow{
			Flight:   flight,
			Gate:     strings.TrimSpace(f["gate"]),
			Aircraft: strings.TrimSpace(f["aircraft"]),
			Airport:  strings.TrimSpace(f["airport"]),
		})
	}
	return out, nil
}
