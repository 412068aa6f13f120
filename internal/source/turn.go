package source

import (
	"gatecheck/internal/normalize"
	"gatecheck/internal/tabular"
)

// TurnColumns is the positional layout of the turnaround schedule export.
type TurnColumns struct {
	Tail      int `yaml:"tail"`
	ArrFlight int `yaml:"arr_flight"`
	ArrTime   int `yaml:"arr_time"`
	ArrGate   int `yaml:"arr_gate"`
	DepFlight int `yaml:"dep_flight"`
	DepTime   int `yaml:"dep_time"`
	DepGate   int `yaml:"dep_gate"`
	TurnTime  int `yaml:"turn_time"`
}

// DefaultTurnColumns matches the current turnaround schedule export.
func DefaultTurnColumns() TurnColumns {
	return TurnColumns{
		Tail:      0,
		ArrFlight: 1,
		ArrTime:   2,
		ArrGate:   3,
		DepFlight: 4,
		DepTime:   5,
		DepGate:   6,
		TurnTime:  7,
	}
}

// TurnAdapter turns turnaround schedule rows into TurnRows for tow
// inference.
type TurnAdapter struct {
	Columns TurnColumns
}

func (a TurnAdapter) projection() Projection {
	return Projection{
		{Index: a.Columns.Tail, Field: "tail", Required: true},
		{Index: a.Columns.ArrFlight, Field: "arr_flight"},
		{Index: a.Columns.ArrTime, Field: "arr_time"},
		{Index: a.Columns.ArrGate, Field: "arr_gate"},
		{Index: a.Columns.DepFlight, Field: "dep_flight"},
		{Index: a.Columns.DepTime, Field: "dep_time"},
		{Index: a.Columns.DepGate, Field: "dep_gate"},
		{Index: a.Columns.TurnTime, Field: "turn_time"},
	}
}

// Rows maps the schedule into TurnRows. An aircraft without a tail cannot
// be towed and is excluded entirely. Day tokens and gate labels degrade to
// their sentinels rather than dropping the row; the inference rules know
// how to treat unknowns.
func (a TurnAdapter) Rows(rows []tabular.Row) ([]TurnRow, error) {
	proj := a.projection()
	if err := proj.Validate(rows); err != nil {
		return nil, err
	}

	var out []TurnRow
	for _, row := range rows {
		f := proj.Project(row)

		tail := normalize.Tail(f["tail"])
		if tail == "" {
			continue
		}

		arrDay, _ := normalize.DayToken(f["arr_time"])
		depDay, _ := normalize.DayToken(f["dep_time"])

		out = append(out, TurnRow{
			Tail:        tail,
			ArrFlight:   normalize.StripCarrierPrefix(f["arr_flight"]),
			ArrGate:     normalize.GateStrict(f["arr_gate"]),
			ArrDay:      arrDay,
			DepFlight:   normalize.StripCarrierPrefix(f["dep_flight"]),
			DepGate:     normalize.GateStrict(f["dep_gate"]),
			DepDay:      depDay,
			DepTime:     f["dep_time"],
			TurnMinutes: normalize.TurnDuration(f["turn_time"]),
		})
	}
	return out, nil
}
