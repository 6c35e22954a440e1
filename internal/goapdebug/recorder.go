// Package goapdebug wraps a goap.Planner's calculate call with trace
// collection and optional external metrics mirroring. None of this is
// read back into a live search; it exists purely to let a batch of
// calculate invocations be inspected after the fact.
package goapdebug

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/goapcore/goap/internal/goap"
)

// ExpansionRecord is one node popped from the open set during a
// calculate call: its f/g/h score and the action that produced it.
type ExpansionRecord struct {
	F          float64 `json:"f"`
	G          float64 `json:"g"`
	H          float64 `json:"h"`
	ActionName string  `json:"action_name"`
	OpenSize   int     `json:"open_size"`
}

// Trace is the diagnostic record of one completed calculate call,
// persisted to disk keyed by an opaque run id.
type Trace struct {
	RunID        string            `json:"run_id"`
	Status       goap.Status       `json:"status"`
	FinalPlan    goap.Plan         `json:"final_plan"`
	Expansions   []ExpansionRecord `json:"expansions"`
	PeakOpenSize int               `json:"peak_open_size"`
	DurationMs   int64             `json:"duration_ms"`
}

// Recorder wraps a *goap.Planner's Calculate call, accumulating an
// expansion trace and, when a MetricsSink is set, mirroring summary
// counters to it. Traces are persisted separately with Save.
type Recorder struct {
	planner *goap.Planner
	sink    *MetricsSink

	trace Trace
}

// NewRecorder wraps planner. sink may be nil to disable metrics
// mirroring entirely.
func NewRecorder(planner *goap.Planner, sink *MetricsSink) *Recorder {
	return &Recorder{planner: planner, sink: sink}
}

// Calculate runs the wrapped planner's Calculate, recording every
// expansion along the way. If the planner returns no error and a sink
// is set, the run's summary counters are pushed to it before returning.
func (r *Recorder) Calculate(ctx context.Context, opts goap.Options) (goap.Result, Trace, error) {
	var records []ExpansionRecord
	peak := 0

	userHook := opts.OnExpand
	opts.OnExpand = func(f, g, h float64, actionName string, openSize int) {
		records = append(records, ExpansionRecord{F: f, G: g, H: h, ActionName: actionName, OpenSize: openSize})
		if openSize > peak {
			peak = openSize
		}
		if userHook != nil {
			userHook(f, g, h, actionName, openSize)
		}
	}

	start := time.Now()
	result, err := r.planner.Calculate(ctx, opts)
	duration := time.Since(start)

	trace := Trace{
		RunID:        uuid.NewString(),
		Status:       result.Status,
		FinalPlan:    result.Plan,
		Expansions:   records,
		PeakOpenSize: peak,
		DurationMs:   duration.Milliseconds(),
	}
	r.trace = trace

	if err != nil {
		return result, trace, err
	}

	if r.sink != nil {
		if pushErr := r.sink.PushSummary(trace.RunID, len(trace.Expansions), trace.FinalPlan.Cost, trace.DurationMs); pushErr != nil {
			return result, trace, fmt.Errorf("goapdebug: push summary metrics: %w", pushErr)
		}
	}

	return result, trace, nil
}

// Save persists trace as indented JSON under baseDir/<run_id>/trace.json.
func Save(baseDir string, trace Trace) error {
	dir := filepath.Join(baseDir, trace.RunID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("goapdebug: create trace dir: %w", err)
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return fmt.Errorf("goapdebug: marshal trace: %w", err)
	}

	path := filepath.Join(dir, "trace.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("goapdebug: write trace: %w", err)
	}
	return nil
}

// Load reads back a previously saved trace, for inspection tooling.
// It is never fed into a live search.
func Load(baseDir, runID string) (Trace, error) {
	path := filepath.Join(baseDir, runID, "trace.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("goapdebug: read trace: %w", err)
	}
	var trace Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return Trace{}, fmt.Errorf("goapdebug: unmarshal trace: %w", err)
	}
	return trace, nil
}
