// Package normalize canonicalizes the raw field values found in gate plan,
// FIDS and turnaround spreadsheet exports so records from different sources
// can be compared by exact equality.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// UnknownGate is returned when a gate value carries no digits at all.
// It is a distinct sentinel so downstream comparisons never conflate
// "no gate known" with an actual gate; two UnknownGate values never
// satisfy a range check.
const UnknownGate = "Unknown"

// nonDigitRe matches everything that is not a decimal digit.
var nonDigitRe = regexp.MustCompile(`[^0-9]`)

// dayTokenRe matches free-text timestamps of the shape "HHMM/DD", optionally
// followed by a suffix ("0153/19 S"). Only the day-of-month digits are
// captured; there is no month or year context to parse.
var dayTokenRe = regexp.MustCompile(`^\s*\d{3,4}/(\d{1,2})\b`)

// turnDurationRe matches "H:MM" or "HH:MM" turn-time text.
var turnDurationRe = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*$`)

// decimalTailRe matches spreadsheet numeric-cell artifacts like "802.0".
var decimalTailRe = regexp.MustCompile(`^(\d+)\.0*$`)

// Aliases maps carrier prefixes that name the same physical flight in
// different sources. The plan export uses mainline "ACA" numbers where the
// FIDS feed shows the regional "QK" code.
type Aliases map[string]string

// DefaultAliases rewrites ACA flight numbers to the QK scheme used by the
// FIDS feed.
func DefaultAliases() Aliases {
	return Aliases{"ACA": "QK"}
}

// FlightID rewrites a known carrier-prefix alias so both sources use one
// identifier scheme. The numeric suffix is never altered; identifiers
// already in the target scheme pass through unchanged.
func (a Aliases) FlightID(raw string) string {
	s := strings.TrimSpace(raw)
	for from, to := range a {
		if strings.HasPrefix(s, from) {
			return to + strings.TrimPrefix(s, from)
		}
	}
	return s
}

// StripCarrierPrefix removes the leading carrier letters (and any space
// separating them from the number) from a flight identifier, leaving the
// bare flight number: "QK 123" -> "123". Tow sheets print flight numbers
// without the carrier code.
func StripCarrierPrefix(raw string) string {
	s := strings.TrimSpace(raw)
	i := 0
	for i < len(s) && (s[i] >= 'A' && s[i] <= 'Z' || s[i] >= 'a' && s[i] <= 'z') {
		i++
	}
	return strings.TrimSpace(s[i:])
}

// Gate reduces a raw gate label to its numeric gate id: whitespace trimmed,
// a single leading slash dropped, then every non-digit character stripped.
// "/ A2" -> "2", "/ C80" -> "80". When no digits remain the UnknownGate
// sentinel is returned, never the empty string.
func Gate(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/")
	s = nonDigitRe.ReplaceAllString(s, "")
	if s == "" {
		return UnknownGate
	}
	return s
}

// GateStrict is the tow-pipeline variant of Gate: it strips at most one
// leading pier letter (A, B or C) after the optional slash instead of
// removing all letters. Gate labels that still contain other letters after
// that are treated as unknown rather than silently squeezed to digits.
func GateStrict(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSpace(s)
	if len(s) > 0 {
		switch s[0] {
		case 'A', 'B', 'C', 'a', 'b', 'c':
			s = s[1:]
		}
	}
	s = strings.TrimSpace(s)
	if s == "" || nonDigitRe.MatchString(s) {
		return UnknownGate
	}
	return s
}

// GateNumber coerces a gate label to its numeric value for range checks.
// ok is false when the label has no usable number; callers must exclude
// such rows from range comparisons instead of treating them as gate 0.
func GateNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, true
	}
	g := Gate(s)
	if g == UnknownGate {
		return 0, false
	}
	n, err := strconv.ParseFloat(g, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DayToken extracts the literal day-of-month digits from a free-text
// timestamp of the shape "HHMM/DD optional-suffix". ok is false when the
// pattern does not match. This is not a date parse; the source fields carry
// no month or year.
func DayToken(raw string) (string, bool) {
	m := dayTokenRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// TurnDuration converts "H:MM" turn-time text to total minutes. Malformed
// or missing input yields 0, which callers treat as "no turn constraint
// known" rather than a zero-minute turn.
func TurnDuration(raw string) int {
	m := turnDurationRe.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm
}

// Tail normalizes an aircraft tail identifier. Spreadsheet numeric cells
// round-trip as decimal text ("802.0"); those are truncated to integer
// text. Anything else passes through trimmed.
func Tail(raw string) string {
	s := strings.TrimSpace(raw)
	if m := decimalTailRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
