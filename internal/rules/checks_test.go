package rules

import (
	"testing"

	"gatecheck/internal/source"
)

func TestGateRange(t *testing.T) {
	check := &GateRange{CheckName: "ytz_gate_range", Label: "YTZ Gate Optimization", Min: 17, Max: 34, Airport: "YTZ"}

	tests := []struct {
		name string
		row  source.FeedRow
		want bool
	}{
		{"in range at airport", source.FeedRow{Flight: "QK100", Gate: "20", Airport: "YTZ"}, true},
		{"case insensitive airport", source.FeedRow{Flight: "QK100", Gate: "20", Airport: "Toronto ytz"}, true},
		{"range boundary low", source.FeedRow{Flight: "QK101", Gate: "17", Airport: "YTZ"}, true},
		{"range boundary high", source.FeedRow{Flight: "QK102", Gate: "34", Airport: "YTZ"}, true},
		{"outside range", source.FeedRow{Flight: "QK103", Gate: "40", Airport: "YTZ"}, false},
		{"wrong airport", source.FeedRow{Flight: "QK104", Gate: "20", Airport: "YHZ"}, false},
		{"unparseable gate", source.FeedRow{Flight: "QK105", Gate: "TBD", Airport: "YTZ"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := check.Apply([]source.FeedRow{tt.row})
			if got := len(flags) > 0; got != tt.want {
				t.Errorf("Apply(%+v) flagged=%v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestAircraftGate(t *testing.T) {
	check := &AircraftGate{CheckName: "crj_gate25", Label: "CRJ-900 at Gate 25", Gate: 25, Aircraft: "CR9"}

	flags := check.Apply([]source.FeedRow{
		{Flight: "QK100", Gate: "25", Aircraft: "CR9"},
		{Flight: "QK101", Gate: "25", Aircraft: "cr9/crj"},
		{Flight: "QK102", Gate: "25", Aircraft: "DH4"},
		{Flight: "QK103", Gate: "26", Aircraft: "CR9"},
	})

	if len(flags) != 2 {
		t.Fatalf("got %d flags, want 2", len(flags))
	}
	if flags[0].Flight != "QK100" || flags[1].Flight != "QK101" {
		t.Errorf("flagged flights = %v", flags)
	}
}

func TestHighGateRange(t *testing.T) {
	check := &HighGateRange{CheckName: "high_gates", Label: "Gates 87-89", Min: 87, Max: 89}

	flags := check.Apply([]source.FeedRow{
		{Flight: "QK100", Gate: "88", Aircraft: "DH4"},
		{Flight: "QK101", Gate: "86"},
	})

	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(flags))
	}
	// This report carries no flight number, only the gate.
	if flags[0].Flight != "" || flags[0].Gate != "88" {
		t.Errorf("flag = %+v, want gate-only flag for 88", flags[0])
	}
}

func TestRegistry_Order(t *testing.T) {
	reg := New()
	reg.Register(&HighGateRange{CheckName: "b", Order: 2})
	reg.Register(&GateRange{CheckName: "a", Order: 1})

	checks := reg.Checks(nil)
	if len(checks) != 2 || checks[0].Name() != "a" {
		t.Errorf("checks not in priority order: %v", checks)
	}

	only := reg.Checks([]string{"b"})
	if len(only) != 1 || only[0].Name() != "b" {
		t.Errorf("name filter failed: %v", only)
	}
}
