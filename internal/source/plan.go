package source

import (
	"strings"
	"time"

	"gatecheck/internal/normalize"
	"gatecheck/internal/tabular"
)

// PlanColumns is the positional layout of the daily gate plan export.
type PlanColumns struct {
	ArrFlight int `yaml:"arr_flight"`
	DepFlight int `yaml:"dep_flight"`
	Gate      int `yaml:"gate"`
}

// DefaultPlanColumns matches the current ADM gates export.
func DefaultPlanColumns() PlanColumns {
	return PlanColumns{ArrFlight: 0, DepFlight: 1, Gate: 2}
}

// PlanAdapter turns gate plan rows into FlightRecords. The plan export has
// no date column; the caller supplies the selected date it was generated
// for.
type PlanAdapter struct {
	Columns PlanColumns
	Aliases normalize.Aliases
}

func (a PlanAdapter) projection() Projection {
	return Projection{
		{Index: a.Columns.ArrFlight, Field: "arr_flight", Required: true},
		{Index: a.Columns.DepFlight, Field: "dep_flight"},
		{Index: a.Columns.Gate, Field: "gate", Required: true},
	}
}

// Records maps the plan rows into one record per flight leg. A plan row
// names an arrival flight and a departure flight sharing one gate; both
// legs become records keyed by their own flight number so either can be
// checked against the feed. Rows missing both flights, or missing the
// gate, contribute nothing.
func (a PlanAdapter) Records(rows []tabular.Row, date time.Time) ([]FlightRecord, error) {
	proj := a.projection()
	if err := proj.Validate(rows); err != nil {
		return nil, err
	}

	day := date.Format(DateLayout)

	var out []FlightRecord
	for _, row := range rows {
		f := proj.Project(row)

		gate := normalize.Gate(f["gate"])
		if gate == normalize.UnknownGate {
			continue
		}

		for _, raw := range []string{f["arr_flight"], f["dep_flight"]} {
			flight := a.Aliases.FlightID(raw)
			if strings.TrimSpace(flight) == "" {
				continue
			}
			out = append(out, FlightRecord{Flight: flight, Date: day, Gate: gate})
		}
	}
	return out, nil
}
