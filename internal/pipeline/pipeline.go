// Package pipeline wires the sources, the reconciliation engine, the rule
// checks and the tow inference into the two independent flows the tool
// exposes. Every run is stateless: inputs are re-read and re-normalized
// from scratch and nothing survives the call.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"gatecheck/internal/config"
	"gatecheck/internal/normalize"
	"gatecheck/internal/reconcile"
	"gatecheck/internal/report"
	"gatecheck/internal/rules"
	"gatecheck/internal/source"
	"gatecheck/internal/tabular"
	"gatecheck/internal/tow"
)

// ErrInputMissing reports a required upload that was not provided. The
// computation does not start.
var ErrInputMissing = errors.New("pipeline: required input missing")

// Input is one uploaded file. Name is used only to pick the decoder by
// extension.
type Input struct {
	Name   string
	Reader io.Reader
}

// Runner executes pipeline runs against one configuration. It holds no
// per-run state; a single Runner serves any number of independent runs.
type Runner struct {
	cfg config.Config
	log *zap.Logger
}

// New creates a Runner. A nil logger disables logging.
func New(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{cfg: cfg, log: log}
}

func (r *Runner) aliases() normalize.Aliases {
	if len(r.cfg.Aliases) == 0 {
		return normalize.DefaultAliases()
	}
	return normalize.Aliases(r.cfg.Aliases)
}

func (r *Runner) joinOptions() reconcile.Options {
	if r.cfg.Reconcile.JoinKey == "flight" {
		return reconcile.Options{Key: reconcile.JoinFlightOnly}
	}
	return reconcile.Options{Key: reconcile.JoinFlightDate}
}

// checks builds the configured rule registry.
func (r *Runner) checks() []rules.Check {
	reg := rules.New()
	reg.Register(&rules.GateRange{
		CheckName: "gate_range",
		Label:     fmt.Sprintf("%s Gate Optimization", r.cfg.Rules.GateRange.Airport),
		Min:       r.cfg.Rules.GateRange.Min,
		Max:       r.cfg.Rules.GateRange.Max,
		Airport:   r.cfg.Rules.GateRange.Airport,
		Order:     10,
	})
	reg.Register(&rules.AircraftGate{
		CheckName: "aircraft_gate",
		Label:     fmt.Sprintf("%s at Gate %g", r.cfg.Rules.AircraftGate.Aircraft, r.cfg.Rules.AircraftGate.Gate),
		Gate:      r.cfg.Rules.AircraftGate.Gate,
		Aircraft:  r.cfg.Rules.AircraftGate.Aircraft,
		Order:     20,
	})
	reg.Register(&rules.HighGateRange{
		CheckName: "high_gate_range",
		Label:     fmt.Sprintf("Gates %g-%g", r.cfg.Rules.HighGateRange.Min, r.cfg.Rules.HighGateRange.Max),
		Min:       r.cfg.Rules.HighGateRange.Min,
		Max:       r.cfg.Rules.HighGateRange.Max,
		Order:     30,
	})
	return reg.Checks(r.cfg.Rules.Enabled)
}

// GateCheck runs the gate mismatch flow and the rule check flow over one
// plan upload and one FIDS upload. The two flows are isolated: a failure
// computing one becomes an error section while the other still reports.
// A file that cannot be decoded at all fails the whole call.
func (r *Runner) GateCheck(ctx context.Context, plan, feed Input, date time.Time) ([]report.Section, error) {
	if plan.Reader == nil || feed.Reader == nil {
		return nil, ErrInputMissing
	}

	planRows, err := tabular.Read(plan.Name, plan.Reader, tabular.ReadOptions{
		Sheet:    r.cfg.Plan.Sheet,
		SkipRows: r.cfg.Plan.SkipRows,
	})
	if err != nil {
		return nil, fmt.Errorf("plan file: %w", err)
	}
	feedRows, err := tabular.Read(feed.Name, feed.Reader, tabular.ReadOptions{
		Sheet:    r.cfg.Feed.Sheet,
		SkipRows: r.cfg.Feed.SkipRows,
	})
	if err != nil {
		return nil, fmt.Errorf("feed file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.log.Debug("sources decoded",
		zap.Int("plan_rows", len(planRows)),
		zap.Int("feed_rows", len(feedRows)))

	sections := []report.Section{r.mismatchSection(planRows, feedRows, date)}
	sections = append(sections, r.ruleSections(feedRows)...)
	return sections, nil
}

// mismatchSection runs flow A. Adapter failures stay inside the section.
func (r *Runner) mismatchSection(planRows, feedRows []tabular.Row, date time.Time) report.Section {
	planAdapter := source.PlanAdapter{Columns: r.cfg.Plan.Columns, Aliases: r.aliases()}
	feedAdapter := source.FeedAdapter{Columns: r.cfg.Feed.Columns, Aliases: r.aliases()}

	planRecords, err := planAdapter.Records(planRows, date)
	if err != nil {
		r.log.Warn("plan adapter failed", zap.Error(err))
		return report.ErrorSection("Gate Mismatches", err)
	}
	feedRecords, err := feedAdapter.Records(feedRows)
	if err != nil {
		r.log.Warn("feed adapter failed", zap.Error(err))
		return report.ErrorSection("Gate Mismatches", err)
	}

	mismatches := reconcile.Reconcile(planRecords, feedRecords, r.joinOptions())
	r.log.Info("reconciled",
		zap.Int("plan_records", len(planRecords)),
		zap.Int("feed_records", len(feedRecords)),
		zap.Int("mismatches", len(mismatches)))
	return report.MismatchSection(mismatches)
}

// ruleSections runs flow B, one section per active check.
func (r *Runner) ruleSections(feedRows []tabular.Row) []report.Section {
	feedAdapter := source.FeedAdapter{Columns: r.cfg.Feed.Columns, Aliases: r.aliases()}
	checks := r.checks()

	ruleRows, err := feedAdapter.RuleRows(feedRows)
	if err != nil {
		r.log.Warn("rule rows failed", zap.Error(err))
		out := make([]report.Section, 0, len(checks))
		for _, c := range checks {
			out = append(out, report.ErrorSection(c.Title(), err))
		}
		return out
	}

	out := make([]report.Section, 0, len(checks))
	for _, c := range checks {
		flags := c.Apply(ruleRows)
		r.log.Info("rule check done", zap.String("check", c.Name()), zap.Int("flags", len(flags)))
		out = append(out, report.FlagSection(c.Title(), flags))
	}
	return out
}

// TowSheet runs the tow inference flow over one turnaround schedule
// upload, returning both the renderable section and the raw instructions
// for export.
func (r *Runner) TowSheet(ctx context.Context, turn Input) ([]report.Section, []tow.Instruction, error) {
	if turn.Reader == nil {
		return nil, nil, ErrInputMissing
	}

	rows, err := tabular.Read(turn.Name, turn.Reader, tabular.ReadOptions{
		Sheet:    r.cfg.Turn.Sheet,
		SkipRows: r.cfg.Turn.SkipRows,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("turnaround file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	adapter := source.TurnAdapter{Columns: r.cfg.Turn.Columns}
	turns, err := adapter.Rows(rows)
	if err != nil {
		return nil, nil, err
	}

	policy := tow.Policy{
		TowOnLongTurn:   r.cfg.Tow.TowOnLongTurn,
		LongTurnMinutes: r.cfg.Tow.LongTurnMinutes,
	}
	instructions := tow.Infer(turns, policy)
	r.log.Info("tow inference done",
		zap.Int("turnarounds", len(turns)),
		zap.Int("instructions", len(instructions)))

	return []report.Section{report.TowSection(instructions)}, instructions, nil
}
