// Package config holds the pipeline configuration. Historical versions of
// this tool were forked per column layout and per active rule; everything
// that varied between those forks lives here instead.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gatecheck/internal/source"
)

// Config is the full tool configuration.
type Config struct {
	// Aliases maps carrier prefixes rewritten before the join, e.g.
	// ACA -> QK.
	Aliases map[string]string `yaml:"aliases"`

	Plan PlanConfig `yaml:"plan"`
	Feed FeedConfig `yaml:"feed"`
	Turn TurnConfig `yaml:"turn"`

	Reconcile ReconcileConfig `yaml:"reconcile"`
	Rules     RulesConfig     `yaml:"rules"`
	Tow       TowConfig       `yaml:"tow"`
}

// PlanConfig configures the gate plan source.
type PlanConfig struct {
	Sheet    string             `yaml:"sheet"`
	SkipRows int                `yaml:"skip_rows"`
	Columns  source.PlanColumns `yaml:"columns"`
}

// FeedConfig configures the FIDS source.
type FeedConfig struct {
	Sheet    string             `yaml:"sheet"`
	SkipRows int                `yaml:"skip_rows"`
	Columns  source.FeedColumns `yaml:"columns"`
}

// TurnConfig configures the turnaround schedule source.
type TurnConfig struct {
	Sheet    string             `yaml:"sheet"`
	SkipRows int                `yaml:"skip_rows"`
	Columns  source.TurnColumns `yaml:"columns"`
}

// ReconcileConfig configures the join.
type ReconcileConfig struct {
	// JoinKey is "flight_date" or "flight". The plan side's date has been
	// unreliable in some export variants; "flight" ignores it.
	JoinKey string `yaml:"join_key"`
}

// RulesConfig configures the static rule checks.
type RulesConfig struct {
	// Enabled lists active check names. Empty means all registered.
	Enabled []string `yaml:"enabled"`

	GateRange     GateRangeConfig    `yaml:"gate_range"`
	AircraftGate  AircraftGateConfig `yaml:"aircraft_gate"`
	HighGateRange RangeConfig        `yaml:"high_gate_range"`
}

// GateRangeConfig parameterizes the airport gate-range check.
type GateRangeConfig struct {
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Airport string  `yaml:"airport"`
}

// AircraftGateConfig parameterizes the aircraft/gate check.
type AircraftGateConfig struct {
	Gate     float64 `yaml:"gate"`
	Aircraft string  `yaml:"aircraft"`
}

// RangeConfig is a bare inclusive gate range.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// TowConfig configures tow inference.
type TowConfig struct {
	// TowOnLongTurn enables the disputed long-turn rule.
	TowOnLongTurn bool `yaml:"tow_on_long_turn"`

	// LongTurnMinutes is the turn-time threshold in minutes.
	LongTurnMinutes int `yaml:"long_turn_minutes"`
}

// Default returns the configuration matching the current exports and the
// rules as last agreed with station operations.
func Default() Config {
	return Config{
		Aliases: map[string]string{"ACA": "QK"},
		Plan:    PlanConfig{SkipRows: 1, Columns: source.DefaultPlanColumns()},
		Feed:    FeedConfig{SkipRows: 1, Columns: source.DefaultFeedColumns()},
		Turn:    TurnConfig{SkipRows: 1, Columns: source.DefaultTurnColumns()},
		Reconcile: ReconcileConfig{
			JoinKey: "flight_date",
		},
		Rules: RulesConfig{
			GateRange:     GateRangeConfig{Min: 17, Max: 34, Airport: "YTZ"},
			AircraftGate:  AircraftGateConfig{Gate: 25, Aircraft: "CR9"},
			HighGateRange: RangeConfig{Min: 87, Max: 89},
		},
		Tow: TowConfig{
			TowOnLongTurn:   false,
			LongTurnMinutes: 120,
		},
	}
}

// Load reads a YAML config file over the defaults: anything the file does
// not set keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values no pipeline run could use.
func (c Config) Validate() error {
	switch c.Reconcile.JoinKey {
	case "", "flight_date", "flight":
	default:
		return fmt.Errorf("config: unknown join_key %q (want flight_date or flight)", c.Reconcile.JoinKey)
	}
	if c.Tow.LongTurnMinutes < 0 {
		return fmt.Errorf("config: long_turn_minutes must not be negative")
	}
	if c.Rules.GateRange.Min > c.Rules.GateRange.Max {
		return fmt.Errorf("config: gate_range min > max")
	}
	if c.Rules.HighGateRange.Min > c.Rules.HighGateRange.Max {
		return fmt.Errorf("config: high_gate_range min > max")
	}
	return nil
}
