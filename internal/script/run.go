package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/files-tooltip/internal/backend"
	"github.com/atomicstack/files-tooltip/internal/format/table"
	"github.com/atomicstack/files-tooltip/internal/logging/events"
	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/atomicstack/files-tooltip/internal/tooltip"
)

// Result is the outcome of one step. Steps other than expectations always
// pass.
type Result struct {
	Index  int
	Step   string
	Passed bool
	Detail string
}

// Report collects the results of a run.
type Report struct {
	Results []Result
}

// Failed returns the failed results.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed {
			out = append(out, res)
		}
	}
	return out
}

// Lines renders the report as aligned rows with a header.
func (r Report) Lines() []string {
	rows := [][]string{{"#", "STEP", "RESULT", "DETAIL"}}
	for _, res := range r.Results {
		status := "ok"
		if !res.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{strconv.Itoa(res.Index), res.Step, status, res.Detail})
	}
	return table.Format(rows, []table.Column{
		{Align: table.AlignRight},
		{MaxWidth: 48},
		{},
		{},
	})
}

// FailureError reports every failed expectation of a run.
type FailureError struct {
	Failures []Result
	Total    int
}

func (e *FailureError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("step %d (%s): %s", f.Index, f.Step, f.Detail)
	}
	return fmt.Sprintf("%d of %d steps failed: %s", len(e.Failures), e.Total, strings.Join(parts, "; "))
}

// Run replays f against a fresh controller driven by a backend loop with
// wall-clock timers. It returns a *FailureError when an expectation fails and
// ctx.Err() when cancelled.
func Run(ctx context.Context, f *File) (Report, error) {
	ctrl := tooltip.New(tooltip.WithHoverDelay(f.HoverDelay()))
	buttons := f.Buttons
	if len(buttons) == 0 {
		buttons = toolbar.Default()
	}
	if err := toolbar.Register(ctrl, buttons); err != nil {
		return Report{}, err
	}

	loop := backend.NewLoop(ctrl)
	timers := loop.UseTimers()
	defer func() {
		timers.Stop()
		loop.Stop()
		loop.Wait()
	}()

	var report Report
	for i, step := range f.Steps {
		res := Result{Index: i + 1, Step: step.String(), Passed: true}
		events.Script.Step(res.Index, res.Step)
		switch {
		case step.Event != "":
			kind, err := tooltip.ParseKind(step.Event)
			if err != nil {
				return report, fmt.Errorf("step %d: %w", res.Index, err)
			}
			if !loop.Post(tooltip.Event{Kind: kind, Target: step.Target}) {
				return report, fmt.Errorf("step %d: event loop stopped", res.Index)
			}
		case step.Wait > 0:
			timer := time.NewTimer(step.Wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return report, ctx.Err()
			case <-timer.C:
			}
		case step.Expect != nil:
			surface, ok := loop.Snapshot()
			if !ok {
				return report, fmt.Errorf("step %d: event loop stopped", res.Index)
			}
			if detail := mismatch(*step.Expect, surface); detail != "" {
				res.Passed = false
				res.Detail = detail
			}
		}
		report.Results = append(report.Results, res)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	failed := report.Failed()
	events.Script.Result(len(report.Results)-len(failed), len(failed))
	if len(failed) > 0 {
		return report, &FailureError{Failures: failed, Total: len(report.Results)}
	}
	return report, nil
}

func mismatch(want Expect, got tooltip.Surface) string {
	var diffs []string
	if want.Visible != nil && *want.Visible != got.Visible {
		diffs = append(diffs, fmt.Sprintf("visible: want %t, got %t", *want.Visible, got.Visible))
	}
	if want.Label != nil && *want.Label != got.Label {
		diffs = append(diffs, fmt.Sprintf("label: want %q, got %q", *want.Label, got.Label))
	}
	if want.Anchor != nil && *want.Anchor != got.AnchorID {
		diffs = append(diffs, fmt.Sprintf("anchor: want %q, got %q", *want.Anchor, got.AnchorID))
	}
	return strings.Join(diffs, ", ")
}
