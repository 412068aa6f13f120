// Package tow derives aircraft tow instructions from a turnaround
// schedule. The schedule carries only day-of-month tokens, so the batch's
// most common day stands in for "today" and each turnaround is classified
// against it.
package tow

import (
	"strconv"

	"gatecheck/internal/normalize"
	"gatecheck/internal/source"
)

// RemoteParking is the location code for aircraft parked off-gate. Gates
// that normalize to unknown resolve here for tow endpoints: an aircraft
// with no gate on record is on the apron.
const RemoteParking = "REMOTE"

// Instruction directs one aircraft move between its arrival and departure.
type Instruction struct {
	ArrFlight string `json:"arrival_flight"`
	Tail      string `json:"tail"`
	From      string `json:"tow_from"`
	To        string `json:"tow_to"`
	DepFlight string `json:"departure_flight"`
	DepTime   string `json:"departure_time"`
}

// Policy holds the configurable inference toggles.
type Policy struct {
	// TowOnLongTurn fires a tow to remote parking when the turn time
	// exceeds LongTurnMinutes even though gates and days match. The
	// operation has flip-flopped on this rule, so it ships as a toggle.
	TowOnLongTurn bool

	// LongTurnMinutes is the turn-time threshold. A turn time of 0 means
	// "unknown" and never exceeds the threshold.
	LongTurnMinutes int
}

// DefaultPolicy keeps the long-turn rule off with the historical 120
// minute threshold.
func DefaultPolicy() Policy {
	return Policy{TowOnLongTurn: false, LongTurnMinutes: 120}
}

// ReferenceDay returns the statistical mode of all day tokens across the
// arrival and departure columns of the batch. Ties break toward the token
// whose first occurrence comes earliest. Empty when the batch has no
// parseable day at all.
func ReferenceDay(rows []source.TurnRow) string {
	counts := make(map[string]int)
	var order []string
	add := func(tok string) {
		if tok == "" {
			return
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	for _, r := range rows {
		add(r.ArrDay)
		add(r.DepDay)
	}

	best := ""
	for _, tok := range order {
		if best == "" || counts[tok] > counts[best] {
			best = tok
		}
	}
	return best
}

// Infer classifies every turnaround against the batch reference day and
// returns the required tow moves. Rules are evaluated in priority order
// and the first match wins:
//
//	A: arrived before the reference day  -> remote parking to departure gate
//	B: departs after the reference day   -> arrival gate to remote parking
//	C: different gates on the same day   -> arrival gate to departure gate
//
// Instructions whose endpoints are both remote parking are suppressed;
// they describe no meaningful move.
func Infer(rows []source.TurnRow, policy Policy) []Instruction {
	ref := ReferenceDay(rows)

	var out []Instruction
	for _, r := range rows {
		ins, ok := classify(r, ref, policy)
		if !ok {
			continue
		}
		if ins.From == RemoteParking && ins.To == RemoteParking {
			continue
		}
		out = append(out, ins)
	}
	return out
}

func classify(r source.TurnRow, ref string, policy Policy) (Instruction, bool) {
	arrGate := towEndpoint(r.ArrGate)
	depGate := towEndpoint(r.DepGate)

	// Rule A: on the ground since before the reporting window. The
	// arrival flight predates the sheet and is left blank.
	if dayBefore(r.ArrDay, ref) {
		return Instruction{
			Tail:      r.Tail,
			From:      RemoteParking,
			To:        depGate,
			DepFlight: r.DepFlight,
			DepTime:   r.DepTime,
		}, true
	}

	// Rule B: stays overnight, so it comes off the gate. The departure
	// belongs to a later sheet and is left blank.
	if dayBefore(ref, r.DepDay) {
		return Instruction{
			ArrFlight: r.ArrFlight,
			Tail:      r.Tail,
			From:      arrGate,
			To:        RemoteParking,
		}, true
	}

	// Rule C: same-day gate change. Requires two known gates; unknown
	// gates are handled by A/B or mean no move is derivable.
	if r.ArrGate != normalize.UnknownGate && r.DepGate != normalize.UnknownGate && r.ArrGate != r.DepGate {
		return Instruction{
			ArrFlight: r.ArrFlight,
			Tail:      r.Tail,
			From:      r.ArrGate,
			To:        r.DepGate,
			DepFlight: r.DepFlight,
			DepTime:   r.DepTime,
		}, true
	}

	// Optional: long turns vacate the gate even without a gate change.
	if policy.TowOnLongTurn && r.TurnMinutes > policy.LongTurnMinutes && r.TurnMinutes > 0 {
		return Instruction{
			ArrFlight: r.ArrFlight,
			Tail:      r.Tail,
			From:      arrGate,
			To:        RemoteParking,
			DepFlight: r.DepFlight,
			DepTime:   r.DepTime,
		}, true
	}

	return Instruction{}, false
}

// towEndpoint resolves a normalized gate to a tow location. Unknown gates
// mean the aircraft is (or ends up) off-gate.
func towEndpoint(gate string) string {
	if gate == "" || gate == normalize.UnknownGate {
		return RemoteParking
	}
	return gate
}

// dayBefore reports whether day token a falls before b. Unparseable or
// missing tokens never compare true, so rows with bad timestamps fall
// through to the same-day rules.
func dayBefore(a, b string) bool {
	ai, err := strconv.Atoi(a)
	if err != nil {
		return false
	}
	bi, err := strconv.Atoi(b)
	if err != nil {
		return false
	}
	return ai < bi
}
