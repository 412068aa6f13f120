// Package reconcile joins the gate plan against the FIDS feed and reports
// flights whose assigned gates disagree.
package reconcile

import "gatecheck/internal/source"

// JoinKey selects which fields records are matched on. The plan export's
// date derivation has proven unreliable in some variants, so the join can
// fall back to flight number alone.
type JoinKey int

const (
	// JoinFlightDate matches records on (flight, date).
	JoinFlightDate JoinKey = iota

	// JoinFlightOnly matches records on flight number alone.
	JoinFlightOnly
)

// Mismatch is one flight whose gate differs between the two sources.
type Mismatch struct {
	Flight   string `json:"flight"`
	Date     string `json:"date,omitempty"`
	PlanGate string `json:"plan_gate"`
	FeedGate string `json:"feed_gate"`
}

// Options controls join behavior.
type Options struct {
	Key JoinKey
}

// Reconcile inner-joins the plan records against the feed records and
// returns one Mismatch per joined pair whose gates differ by exact string
// inequality. Duplicate keys on either side multiply as in a relational
// inner join; exact duplicate output rows are removed afterwards. Flights
// present on only one side are silently excluded. Output follows plan
// (left input) order.
func Reconcile(plan, feed []source.FlightRecord, opts Options) []Mismatch {
	byKey := make(map[string][]source.FlightRecord, len(feed))
	for _, f := range feed {
		k := key(f, opts.Key)
		byKey[k] = append(byKey[k], f)
	}

	seen := make(map[Mismatch]bool)
	var out []Mismatch
	for _, p := range plan {
		for _, f := range byKey[key(p, opts.Key)] {
			if p.Gate == f.Gate {
				continue
			}
			m := Mismatch{Flight: p.Flight, Date: p.Date, PlanGate: p.Gate, FeedGate: f.Gate}
			if opts.Key == JoinFlightOnly {
				m.Date = ""
			}
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

func key(r source.FlightRecord, k JoinKey) string {
	if k == JoinFlightOnly {
		return r.Flight
	}
	return r.Flight + "\x00" + r.Date
}
