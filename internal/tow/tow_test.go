package tow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gatecheck/internal/normalize"
	"gatecheck/internal/source"
)

func turn(tail, arrFlight, arrGate, arrDay, depFlight, depGate, depDay string, turnMin int) source.TurnRow {
	return source.TurnRow{
		Tail: tail, ArrFlight: arrFlight, ArrGate: arrGate, ArrDay: arrDay,
		DepFlight: depFlight, DepGate: depGate, DepDay: depDay,
		DepTime: depDay + "T", TurnMinutes: turnMin,
	}
}

func TestReferenceDay(t *testing.T) {
	rows := []source.TurnRow{
		turn("801", "100", "5", "19", "101", "5", "19", 0),
		turn("802", "102", "7", "19", "103", "7", "20", 0),
		turn("803", "104", "9", "18", "105", "9", "19", 0),
	}

	if got := ReferenceDay(rows); got != "19" {
		t.Errorf("ReferenceDay() = %q, want %q", got, "19")
	}
}

func TestReferenceDay_TieBreaksToFirstSeen(t *testing.T) {
	rows := []source.TurnRow{
		turn("801", "100", "5", "20", "101", "5", "19", 0),
		turn("802", "102", "7", "19", "103", "7", "20", 0),
	}

	// 19 and 20 both occur twice; 20 was seen first.
	if got := ReferenceDay(rows); got != "20" {
		t.Errorf("ReferenceDay() = %q, want %q", got, "20")
	}
}

func TestReferenceDay_Empty(t *testing.T) {
	rows := []source.TurnRow{turn("801", "100", "5", "", "101", "5", "", 0)}
	if got := ReferenceDay(rows); got != "" {
		t.Errorf("ReferenceDay() = %q, want empty", got)
	}
}

func TestInfer_RuleA_EarlyArrival(t *testing.T) {
	rows := []source.TurnRow{
		// Two rows pin the reference day to 19.
		turn("900", "500", "3", "19", "501", "3", "19", 0),
		turn("901", "502", "4", "19", "503", "4", "19", 0),
		turn("802", "100", "5", "18", "101", "7", "19", 0),
	}

	got := Infer(rows, DefaultPolicy())
	want := []Instruction{
		{Tail: "802", From: RemoteParking, To: "7", DepFlight: "101", DepTime: "19T"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Infer() mismatch (-want +got):\n%s", diff)
	}
	if got[0].ArrFlight != "" {
		t.Errorf("Rule A must blank the arrival flight, got %q", got[0].ArrFlight)
	}
}

func TestInfer_RuleB_LateDeparture(t *testing.T) {
	rows := []source.TurnRow{
		turn("900", "500", "3", "19", "501", "3", "19", 0),
		turn("901", "502", "4", "19", "503", "4", "19", 0),
		turn("802", "100", "5", "19", "101", "5", "20", 0),
	}

	got := Infer(rows, DefaultPolicy())
	want := []Instruction{
		{ArrFlight: "100", Tail: "802", From: "5", To: RemoteParking},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Infer() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer_RuleC_GateChange(t *testing.T) {
	rows := []source.TurnRow{
		turn("802", "100", "5", "19", "101", "7", "19", 45),
	}

	got := Infer(rows, DefaultPolicy())
	want := []Instruction{
		{ArrFlight: "100", Tail: "802", From: "5", To: "7", DepFlight: "101", DepTime: "19T"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Infer() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfer_SameGateSameDay_NoTow(t *testing.T) {
	rows := []source.TurnRow{
		turn("802", "100", "5", "19", "101", "5", "19", 45),
	}

	if got := Infer(rows, DefaultPolicy()); len(got) != 0 {
		t.Errorf("Infer() = %v, want no instructions", got)
	}
}

func TestInfer_BothRemoteSuppressed(t *testing.T) {
	rows := []source.TurnRow{
		turn("900", "500", "3", "19", "501", "3", "19", 0),
		turn("901", "502", "4", "19", "503", "4", "19", 0),
		// Early arrival with no departure gate on record: the computed
		// move would be remote parking to remote parking.
		turn("802", "100", "5", "18", "101", normalize.UnknownGate, "19", 0),
	}

	if got := Infer(rows, DefaultPolicy()); len(got) != 0 {
		t.Errorf("Infer() = %v, want suppression of remote-to-remote", got)
	}
}

func TestInfer_LongTurnPolicy(t *testing.T) {
	rows := []source.TurnRow{
		turn("802", "100", "5", "19", "101", "5", "19", 180),
	}

	// Off by default.
	if got := Infer(rows, DefaultPolicy()); len(got) != 0 {
		t.Errorf("long-turn tow fired with policy disabled: %v", got)
	}

	policy := Policy{TowOnLongTurn: true, LongTurnMinutes: 120}
	got := Infer(rows, policy)
	want := []Instruction{
		{ArrFlight: "100", Tail: "802", From: "5", To: RemoteParking, DepFlight: "101", DepTime: "19T"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Infer() mismatch (-want +got):\n%s", diff)
	}

	// Unknown turn time (0) never exceeds the threshold.
	rows[0].TurnMinutes = 0
	if got := Infer(rows, policy); len(got) != 0 {
		t.Errorf("long-turn tow fired on unknown turn time: %v", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Instruction{
		{ArrFlight: "100", Tail: "802", From: "5", To: "7", DepFlight: "101", DepTime: "0730/19"},
	})
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Arrival Flight,Tail,Tow From,Tow To,Departure Flight,Departure Time" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "100,802,5,7,101,0730/19" {
		t.Errorf("row = %q", lines[1])
	}
}
