package rules

import (
	"fmt"
	"strings"

	"gatecheck/internal/normalize"
	"gatecheck/internal/source"
)

// GateRange flags every feed row whose numeric gate falls inside an
// inclusive range at a specific airport. Used for the YTZ gate
// optimization rule (gates 17-34 cannot take mainline equipment there).
type GateRange struct {
	CheckName string
	Label     string
	Min, Max  float64
	Airport   string
	Order     int
}

func (c *GateRange) Name() string  { return c.CheckName }
func (c *GateRange) Title() string { return c.Label }
func (c *GateRange) Priority() int { return c.Order }

func (c *GateRange) Apply(rows []source.FeedRow) []Flag {
	var flags []Flag
	for _, row := range rows {
		n, ok := normalize.GateNumber(row.Gate)
		if !ok {
			continue
		}
		if n < c.Min || n > c.Max {
			continue
		}
		if !strings.Contains(strings.ToUpper(row.Airport), strings.ToUpper(c.Airport)) {
			continue
		}
		flags = append(flags, Flag{
			Flight:   row.Flight,
			Gate:     row.Gate,
			Aircraft: row.Aircraft,
			Warning:  fmt.Sprintf("gate %s is in restricted range %g-%g at %s", row.Gate, c.Min, c.Max, c.Airport),
		})
	}
	return flags
}

// AircraftGate flags rows where a specific gate is paired with an
// aircraft type it cannot take.
type AircraftGate struct {
	CheckName string
	Label     string
	Gate      float64
	Aircraft  string
	Order     int
}

func (c *AircraftGate) Name() string  { return c.CheckName }
func (c *AircraftGate) Title() string { return c.Label }
func (c *AircraftGate) Priority() int { return c.Order }

func (c *AircraftGate) Apply(rows []source.FeedRow) []Flag {
	var flags []Flag
	for _, row := range rows {
		n, ok := normalize.GateNumber(row.Gate)
		if !ok || n != c.Gate {
			continue
		}
		if !strings.Contains(strings.ToUpper(row.Aircraft), strings.ToUpper(c.Aircraft)) {
			continue
		}
		flags = append(flags, Flag{
			Flight:   row.Flight,
			Gate:     row.Gate,
			Aircraft: row.Aircraft,
			Warning:  fmt.Sprintf("%s cannot be worked at gate %g", c.Aircraft, c.Gate),
		})
	}
	return flags
}

// HighGateRange flags rows whose numeric gate falls in a second inclusive
// range regardless of aircraft type. No flight number is attached; the
// historical report listed only the gate.
type HighGateRange struct {
	CheckName string
	Label     string
	Min, Max  float64
	Order     int
}

func (c *HighGateRange) Name() string  { return c.CheckName }
func (c *HighGateRange) Title() string { return c.Label }
func (c *HighGateRange) Priority() int { return c.Order }

func (c *HighGateRange) Apply(rows []source.FeedRow) []Flag {
	var flags []Flag
	for _, row := range rows {
		n, ok := normalize.GateNumber(row.Gate)
		if !ok {
			continue
		}
		if n < c.Min || n > c.Max {
			continue
		}
		flags = append(flags, Flag{
			Gate:    row.Gate,
			Warning: fmt.Sprintf("gate %s is in restricted range %g-%g", row.Gate, c.Min, c.Max),
		})
	}
	return flags
}
