package goap

import (
	"fmt"
	"strings"
)

// PlanStep is one action taken along a plan, together with the cumulative
// cost and the resulting world state at that point.
type PlanStep struct {
	ActionName string
	G          float64
	State      State
}

// Plan is an ordered sequence of steps transforming the start state into
// one satisfying the goal. The empty plan (len(Steps) == 0) is returned
// both when the start already satisfies the goal and when no plan
// exists; Result.Status disambiguates.
type Plan struct {
	Steps []PlanStep
	Cost  float64
}

// String renders the plan for logs and diagnostics.
func (p Plan) String() string {
	if len(p.Steps) == 0 {
		return "empty plan"
	}
	parts := make([]string, len(p.Steps))
	for i, step := range p.Steps {
		parts[i] = fmt.Sprintf("%d. %s (g=%.2f)", i+1, step.ActionName, step.G)
	}
	return fmt.Sprintf("plan (cost=%.2f):\n%s", p.Cost, strings.Join(parts, "\n"))
}

// Status classifies the outcome of a calculate call.
type Status string

const (
	StatusFound           Status = "found"
	StatusNoPlan          Status = "no_plan"
	StatusBudgetExhausted Status = "budget_exhausted"
)

// Result is what calculate returns: the plan (empty unless Status is
// Found) and the status explaining why.
type Result struct {
	Plan   Plan
	Status Status
}

// reconstructPlan walks parent ids from the goal node back to the start
// node (parentID -1) and emits the steps in forward order. The start node
// itself is excluded, matching §4.6.
func reconstructPlan(arena []*searchNode, goalID int) Plan {
	var steps []PlanStep
	cost := arena[goalID].g

	for id := goalID; arena[id].parentID != -1; id = arena[id].parentID {
		n := arena[id]
		steps = append(steps, PlanStep{
			ActionName: n.actionName,
			G:          n.g,
			State:      n.state.Clone(),
		})
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return Plan{Steps: steps, Cost: cost}
}
