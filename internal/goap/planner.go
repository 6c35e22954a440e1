package goap

import (
	"container/heap"
	"context"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// searchNode is one entry in the planner's arena: a discovered state,
// its best known cost-so-far, its heuristic estimate, and the action
// that produced it from its parent. parentID is -1 for the start node.
type searchNode struct {
	id         int
	key        string
	state      State
	g          float64
	h          float64
	f          float64
	parentID   int
	actionName string
	heapIndex  int
}

// openHeap is a binary min-heap over *searchNode ordered by (f, g, name)
// ascending, matching the determinism invariant's tie-break rule.
type openHeap []*searchNode

func (h openHeap) Len() int { return len(h) }

func (h openHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	return a.actionName < b.actionName
}

func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *openHeap) Push(x interface{}) {
	n := x.(*searchNode)
	n.heapIndex = len(*h)
	*h = append(*h, n)
}

func (h *openHeap) Pop() interface{} {
	old := *h
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.heapIndex = -1
	*h = old[:last]
	return n
}

// Options configures a single calculate call.
type Options struct {
	// MaxExpansions caps the number of nodes popped from open. Zero
	// means unbounded.
	MaxExpansions int
	// TimeBudget caps wall-clock search time. Zero means unbounded.
	TimeBudget time.Duration
	// OnExpand, if set, is called once for every node popped from open,
	// after its successors have been generated and pushed; for the node
	// that satisfies the goal it is called without generating any
	// successors. openSize is the size of the open set at that point. It exists for the
	// debugger surface (goapdebug.Recorder) to observe expansion order
	// and open-set growth without the core planner depending on it.
	OnExpand func(f, g, h float64, actionName string, openSize int)
}

// Planner is configured once with the universe of state keys, then with
// a start state, a goal mask, an action catalog, and a heuristic, before
// Calculate runs A* over them.
type Planner struct {
	keys map[string]struct{}

	start State
	goal  Mask

	catalog *ActionCatalog

	heuristicName   HeuristicName
	heuristicParams HeuristicParams
}

// NewPlanner creates a Planner over the given universe of state keys.
func NewPlanner(keys []string) *Planner {
	p := &Planner{keys: make(map[string]struct{}, len(keys)), heuristicName: HeuristicZero}
	for _, k := range keys {
		p.keys[k] = struct{}{}
	}
	return p
}

// SetStartState records the start state. Returns UnknownKey if state
// mentions a key outside the planner's universe.
func (p *Planner) SetStartState(state State) error {
	for k := range state {
		if _, ok := p.keys[k]; !ok {
			return errUnknownKey(k)
		}
	}
	p.start = state.Clone()
	return nil
}

// SetGoalState records the goal mask. Returns UnknownKey if the mask
// mentions a key outside the planner's universe.
func (p *Planner) SetGoalState(goal Mask) error {
	for k := range goal {
		if _, ok := p.keys[k]; !ok {
			return errUnknownKey(k)
		}
	}
	p.goal = goal.Clone()
	return nil
}

// SetActionList attaches the action catalog to be validated and searched
// at Calculate time.
func (p *Planner) SetActionList(catalog *ActionCatalog) {
	p.catalog = catalog
}

// SetHeuristic selects the named heuristic and its parameters.
func (p *Planner) SetHeuristic(name HeuristicName, params HeuristicParams) {
	p.heuristicName = name
	p.heuristicParams = params
}

// Calculate runs A* per §4.4 and returns the plan and its outcome status.
// Validation errors (malformed catalog entries) are returned as *Error
// and abort before any search; NoPlan and BudgetExhausted are reported
// through Result.Status, never as errors. The action catalog is
// deep-copied into validated Action values before search begins, so
// mutation of the caller's own tables during or after Calculate cannot
// be observed by this call.
func (p *Planner) Calculate(ctx context.Context, opts Options) (Result, error) {
	actions, err := p.catalog.Validate()
	if err != nil {
		return Result{}, err
	}

	start := p.start.Clone()
	goal := p.goal.Clone()

	if start.Satisfies(goal) {
		return Result{Plan: Plan{}, Status: StatusFound}, nil
	}

	hctx := buildHeuristicContext(p.heuristicName, start, goal, actions)

	names := make([]string, len(actions))
	byName := make(map[string]Action, len(actions))
	for i, a := range actions {
		names[i] = a.Name
		byName[a.Name] = a
	}
	sort.Strings(names)

	var arena []*searchNode
	open := &openHeap{}
	heap.Init(open)
	openByKey := make(map[string]*searchNode)
	closedByKey := make(map[string]*searchNode)

	newNode := func(state State, g, h float64, parentID int, actionName string) *searchNode {
		n := &searchNode{
			id:         len(arena),
			key:        state.CanonicalKey(),
			state:      state,
			g:          g,
			h:          h,
			f:          g + h,
			parentID:   parentID,
			actionName: actionName,
		}
		arena = append(arena, n)
		return n
	}

	startH := evaluateHeuristic(p.heuristicName, p.heuristicParams, start, goal, hctx)
	startNode := newNode(start, 0, startH, -1, "start")
	heap.Push(open, startNode)
	openByKey[startNode.key] = startNode

	expansions := 0
	var deadline time.Time
	if opts.TimeBudget > 0 {
		deadline = time.Now().Add(opts.TimeBudget)
	}

	for {
		if open.Len() == 0 {
			log.Debug("goap: open exhausted", "expansions", expansions)
			return Result{Plan: Plan{}, Status: StatusNoPlan}, nil
		}
		if opts.MaxExpansions > 0 && expansions >= opts.MaxExpansions {
			log.Debug("goap: expansion budget exhausted", "max_expansions", opts.MaxExpansions)
			return Result{Plan: Plan{}, Status: StatusBudgetExhausted}, nil
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			log.Debug("goap: time budget exhausted", "budget", opts.TimeBudget)
			return Result{Plan: Plan{}, Status: StatusBudgetExhausted}, nil
		}
		select {
		case <-ctx.Done():
			log.Debug("goap: context canceled")
			return Result{Plan: Plan{}, Status: StatusBudgetExhausted}, nil
		default:
		}

		node := heap.Pop(open).(*searchNode)
		delete(openByKey, node.key)
		expansions++

		if node.state.Satisfies(goal) {
			plan := reconstructPlan(arena, node.id)
			if opts.OnExpand != nil {
				opts.OnExpand(node.f, node.g, node.h, node.actionName, open.Len())
			}
			log.Debug("goap: plan found", "expansions", expansions, "cost", plan.Cost)
			return Result{Plan: plan, Status: StatusFound}, nil
		}

		closedByKey[node.key] = node

		for _, name := range names {
			action := byName[name]
			if !node.state.Satisfies(action.Preconditions) {
				continue
			}
			succ := node.state.Apply(action.Effects)
			if succ.Equal(node.state) {
				continue
			}
			succKey := succ.CanonicalKey()
			tentativeG := node.g + action.Cost

			if closedNode, ok := closedByKey[succKey]; ok {
				if closedNode.g <= tentativeG {
					continue
				}
				delete(closedByKey, succKey)
			}

			if openNode, ok := openByKey[succKey]; ok {
				if openNode.g <= tentativeG {
					continue
				}
				openNode.g = tentativeG
				openNode.f = tentativeG + openNode.h
				openNode.parentID = node.id
				openNode.actionName = name
				heap.Fix(open, openNode.heapIndex)
				continue
			}

			h := evaluateHeuristic(p.heuristicName, p.heuristicParams, succ, goal, hctx)
			succNode := newNode(succ, tentativeG, h, node.id, name)
			heap.Push(open, succNode)
			openByKey[succKey] = succNode
		}

		if opts.OnExpand != nil {
			opts.OnExpand(node.f, node.g, node.h, node.actionName, open.Len())
		}
	}
}
