package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/goapcore/goap/internal/catalogio"
	"github.com/goapcore/goap/internal/config"
	"github.com/goapcore/goap/internal/goap"
	"github.com/goapcore/goap/internal/goapdebug"
	"github.com/goapcore/goap/internal/progress"
)

// PlanCommand runs calculate over a catalog/start/goal document triple,
// wrapped in a goapdebug.Recorder, and writes a trace file.
type PlanCommand struct {
	CatalogFile string `arg:"" name:"catalog" help:"Action catalog YAML file" type:"path"`
	StartFile   string `arg:"" name:"start" help:"Start state YAML file" type:"path"`
	GoalFile    string `arg:"" name:"goal" help:"Goal mask YAML file" type:"path"`

	Config        string `name:"config" help:"Configuration file path" type:"path"`
	Heuristic     string `name:"heuristic" help:"Override heuristic from config"`
	Weighted      bool   `name:"weighted" help:"Weight the heuristic by minimum action cost"`
	MaxExpansions int    `name:"max-expansions" help:"Override max_expansions from config"`
	TimeBudgetMs  int    `name:"time-budget-ms" help:"Override time_budget_ms from config"`
}

// Run executes the plan command.
func (cmd *PlanCommand) Run() error {
	prog := progress.NewIndicator(true)
	prog.Phase("loading")

	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	prog.Step("config")

	keys, catalog, err := catalogio.LoadCatalog(cmd.CatalogFile, cfg.Catalog.Strict)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	prog.Step("catalog")
	start, err := catalogio.LoadState(cmd.StartFile)
	if err != nil {
		return fmt.Errorf("failed to load start state: %w", err)
	}
	goalMask, err := catalogio.LoadMask(cmd.GoalFile)
	if err != nil {
		return fmt.Errorf("failed to load goal mask: %w", err)
	}
	prog.Step("start and goal")
	keys = mergeKeys(keys, catalog, start, goalMask)

	heuristicName := cfg.Heuristic.Name
	if cmd.Heuristic != "" {
		heuristicName = cmd.Heuristic
	}
	weighted := cfg.Heuristic.Weighted || cmd.Weighted

	maxExpansions := cfg.Budget.MaxExpansions
	if cmd.MaxExpansions > 0 {
		maxExpansions = cmd.MaxExpansions
	}
	timeBudgetMs := cfg.Budget.TimeBudgetMs
	if cmd.TimeBudgetMs > 0 {
		timeBudgetMs = cmd.TimeBudgetMs
	}

	planner := goap.NewPlanner(keys)
	if err := planner.SetStartState(start); err != nil {
		return fmt.Errorf("failed to set start state: %w", err)
	}
	if err := planner.SetGoalState(goalMask); err != nil {
		return fmt.Errorf("failed to set goal state: %w", err)
	}
	planner.SetActionList(catalog)
	planner.SetHeuristic(goap.HeuristicName(heuristicName), goap.HeuristicParams{Weighted: weighted})

	sink := goapdebug.NewMetricsSink(cfg.Trace)
	recorder := goapdebug.NewRecorder(planner, sink)

	prog.Phase("searching")
	expansions := 0
	ctx := context.Background()
	opts := goap.Options{
		MaxExpansions: maxExpansions,
		TimeBudget:    time.Duration(timeBudgetMs) * time.Millisecond,
		OnExpand: func(f, g, h float64, actionName string, openSize int) {
			expansions++
			if expansions%1000 == 0 {
				prog.Expansion(expansions, openSize)
			}
		},
	}

	result, trace, err := recorder.Calculate(ctx, opts)
	if err != nil {
		prog.Error("search", err)
		return fmt.Errorf("calculate failed: %w", err)
	}

	switch result.Status {
	case goap.StatusFound:
		fmt.Println(result.Plan.String())
	case goap.StatusNoPlan:
		fmt.Println("no plan exists from this start state to this goal")
	case goap.StatusBudgetExhausted:
		fmt.Println("search budget exhausted before a plan was found or ruled out")
	}
	fmt.Printf("\nexpansions: %d, peak open size: %d, duration: %dms\n", len(trace.Expansions), trace.PeakOpenSize, trace.DurationMs)

	if cfg.Trace.Directory != "" {
		if err := goapdebug.Save(cfg.Trace.Directory, trace); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
		fmt.Printf("trace written: %s/%s/trace.json\n", cfg.Trace.Directory, trace.RunID)
	}

	prog.Summary(result.Status == goap.StatusFound, string(result.Status))
	return nil
}

// mergeKeys unions the declared catalog keys with every key mentioned
// in the start state, goal mask, or any action's conditions/effects, so
// a catalog that omits "keys" still planner-validates correctly.
func mergeKeys(declared []string, catalog *goap.ActionCatalog, start goap.State, goalMask goap.Mask) []string {
	seen := make(map[string]struct{}, len(declared))
	var out []string
	add := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	for _, k := range declared {
		add(k)
	}
	for k := range start {
		add(k)
	}
	for k := range goalMask {
		add(k)
	}
	for _, name := range catalog.Names() {
		for k := range catalog.Conditions(name) {
			add(k)
		}
		for k := range catalog.Effects(name) {
			add(k)
		}
	}
	return out
}
