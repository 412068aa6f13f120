// Package report carries pipeline results to whatever presents them. The
// pipelines emit ordered, labeled sections of tabular data; rendering
// (terminal, JSON, download) is the consumer's business.
package report

import (
	"gatecheck/internal/reconcile"
	"gatecheck/internal/rules"
	"gatecheck/internal/tow"
)

// Section is one labeled result table. An empty table with AllClear set is
// a real outcome ("checked, nothing found"), distinct from a section that
// failed to compute at all.
type Section struct {
	Label    string     `json:"label"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Count    int        `json:"count"`
	AllClear bool       `json:"all_clear"`

	// Err is set when this section's flow failed; the other sections of
	// the run are still valid.
	Err string `json:"error,omitempty"`
}

// MismatchSection builds the gate mismatch section.
func MismatchSection(mismatches []reconcile.Mismatch) Section {
	s := Section{
		Label:    "Gate Mismatches",
		Columns:  []string{"Flight", "Date", "Plan Gate", "FIDS Gate"},
		Count:    len(mismatches),
		AllClear: len(mismatches) == 0,
	}
	for _, m := range mismatches {
		s.Rows = append(s.Rows, []string{m.Flight, m.Date, m.PlanGate, m.FeedGate})
	}
	return s
}

// FlagSection builds one rule check's section. Checks attach different
// fields (the high-gate report carries no flight number), so only columns
// some flag actually fills appear in the table.
func FlagSection(label string, flags []rules.Flag) Section {
	s := Section{
		Label:    label,
		Count:    len(flags),
		AllClear: len(flags) == 0,
	}

	var hasFlight, hasAircraft bool
	for _, f := range flags {
		hasFlight = hasFlight || f.Flight != ""
		hasAircraft = hasAircraft || f.Aircraft != ""
	}

	if hasFlight {
		s.Columns = append(s.Columns, "Flight")
	}
	s.Columns = append(s.Columns, "Gate")
	if hasAircraft {
		s.Columns = append(s.Columns, "Aircraft")
	}
	s.Columns = append(s.Columns, "Warning")

	for _, f := range flags {
		var row []string
		if hasFlight {
			row = append(row, f.Flight)
		}
		row = append(row, f.Gate)
		if hasAircraft {
			row = append(row, f.Aircraft)
		}
		row = append(row, f.Warning)
		s.Rows = append(s.Rows, row)
	}
	return s
}

// TowSection builds the tow sheet section using the export column order.
func TowSection(instructions []tow.Instruction) Section {
	s := Section{
		Label:    "Tow Moves",
		Columns:  tow.ExportHeader,
		Count:    len(instructions),
		AllClear: len(instructions) == 0,
	}
	for _, ins := range instructions {
		s.Rows = append(s.Rows, []string{ins.ArrFlight, ins.Tail, ins.From, ins.To, ins.DepFlight, ins.DepTime})
	}
	return s
}

// ErrorSection marks a flow that failed before producing results.
func ErrorSection(label string, err error) Section {
	return Section{Label: label, Err: err.Error()}
}
