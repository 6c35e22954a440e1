package goap

import "context"

// World aggregates several independently configured planners (for
// instance, one per competing goal) and runs them one at a time,
// returning the lowest-cost Found result. It never parallelizes
// Calculate across its registered planners: the core spec's
// single-threaded concurrency model (§5) applies to the World container
// too, since dispatching planners across goroutines would be
// "concurrent planning across threads".
type World struct {
	planners []*Planner
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{}
}

// Register appends a planner and returns its registration index, used
// as the deterministic tie-break when two planners return equally
// cheap plans.
func (w *World) Register(p *Planner) int {
	w.planners = append(w.planners, p)
	return len(w.planners) - 1
}

// WorldResult pairs a planner's registration index with the Result its
// Calculate call produced.
type WorldResult struct {
	PlannerIndex int
	Result       Result
}

// Calculate runs Calculate on every registered planner, in registration
// order, and returns the cheapest Found result. Ties are broken by
// registration index (the earliest-registered planner wins). If no
// planner finds a plan, Calculate returns the result of the
// lowest-index planner whose status is BudgetExhausted if any budget was
// exhausted, otherwise the lowest-index NoPlan result. An error from any
// planner's Calculate aborts immediately.
func (w *World) Calculate(ctx context.Context, opts Options) (WorldResult, error) {
	var best *WorldResult
	var fallback *WorldResult

	for i, p := range w.planners {
		res, err := p.Calculate(ctx, opts)
		if err != nil {
			return WorldResult{}, err
		}
		wr := WorldResult{PlannerIndex: i, Result: res}

		if res.Status == StatusFound {
			if best == nil || res.Plan.Cost < best.Result.Plan.Cost {
				best = &wr
			}
			continue
		}
		if fallback == nil {
			fallback = &wr
		} else if res.Status == StatusBudgetExhausted && fallback.Result.Status != StatusBudgetExhausted {
			fallback = &wr
		}
	}

	if best != nil {
		return *best, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return WorldResult{PlannerIndex: -1, Result: Result{Status: StatusNoPlan}}, nil
}
