package goapdebug

import (
	"context"
	"testing"

	"github.com/goapcore/goap/internal/goap"
)

func cookCatalog() *goap.ActionCatalog {
	c := goap.NewActionCatalog()
	c.AddCondition("cook", goap.Mask{"hungry": goap.Bool(true), "has_food": goap.Bool(false)})
	c.AddEffect("cook", goap.State{"has_food": goap.Bool(true)})
	c.SetCost("cook", 1)
	c.AddCondition("eat", goap.Mask{"hungry": goap.Bool(true), "has_food": goap.Bool(true)})
	c.AddEffect("eat", goap.State{"hungry": goap.Bool(false), "has_food": goap.Bool(false)})
	c.SetCost("eat", 1)
	return c
}

func newCookPlanner(t *testing.T) *goap.Planner {
	t.Helper()
	p := goap.NewPlanner([]string{"hungry", "has_food"})
	if err := p.SetStartState(goap.State{"hungry": goap.Bool(true), "has_food": goap.Bool(false)}); err != nil {
		t.Fatalf("SetStartState: %v", err)
	}
	if err := p.SetGoalState(goap.Mask{"hungry": goap.Bool(false)}); err != nil {
		t.Fatalf("SetGoalState: %v", err)
	}
	p.SetActionList(cookCatalog())
	p.SetHeuristic(goap.HeuristicDomainAware, goap.HeuristicParams{})
	return p
}

func TestRecorderCapturesExpansions(t *testing.T) {
	rec := NewRecorder(newCookPlanner(t), nil)

	result, trace, err := rec.Calculate(context.Background(), goap.Options{MaxExpansions: 1000})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if result.Status != goap.StatusFound {
		t.Fatalf("expected StatusFound, got %s", result.Status)
	}
	if len(trace.Expansions) == 0 {
		t.Fatal("expected at least one recorded expansion")
	}
	if trace.RunID == "" {
		t.Fatal("expected a non-empty run id")
	}
	if trace.PeakOpenSize <= 0 {
		t.Fatal("expected a positive peak open size")
	}
	if trace.FinalPlan.Cost != result.Plan.Cost {
		t.Fatalf("trace plan cost %v does not match result %v", trace.FinalPlan.Cost, result.Plan.Cost)
	}
}

func TestRecorderSaveAndLoadRoundTrip(t *testing.T) {
	rec := NewRecorder(newCookPlanner(t), nil)
	_, trace, err := rec.Calculate(context.Background(), goap.Options{MaxExpansions: 1000})
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	dir := t.TempDir()
	if err := Save(dir, trace); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir, trace.RunID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Status != trace.Status || len(loaded.Expansions) != len(trace.Expansions) {
		t.Fatalf("round-tripped trace mismatch: got %+v, want %+v", loaded, trace)
	}
}

func TestRecorderNilSinkIsNoop(t *testing.T) {
	rec := NewRecorder(newCookPlanner(t), nil)
	if _, _, err := rec.Calculate(context.Background(), goap.Options{MaxExpansions: 1000}); err != nil {
		t.Fatalf("Calculate with nil sink: %v", err)
	}
}
