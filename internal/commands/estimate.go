package commands

import (
	"fmt"

	"github.com/goapcore/goap/internal/catalogio"
	"github.com/goapcore/goap/internal/estimation"
)

// EstimateCommand reports a lower-cost-bound and recommended search
// budgets for a catalog/start/goal document triple without running A*.
type EstimateCommand struct {
	CatalogFile string `arg:"" name:"catalog" help:"Action catalog YAML file" type:"path"`
	StartFile   string `arg:"" name:"start" help:"Start state YAML file" type:"path"`
	GoalFile    string `arg:"" name:"goal" help:"Goal mask YAML file" type:"path"`
	Strict      bool   `name:"strict" help:"Restrict effect values to booleans"`
}

// Run executes the estimate command.
func (cmd *EstimateCommand) Run() error {
	_, catalog, err := catalogio.LoadCatalog(cmd.CatalogFile, cmd.Strict)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	start, err := catalogio.LoadState(cmd.StartFile)
	if err != nil {
		return fmt.Errorf("failed to load start state: %w", err)
	}
	goalMask, err := catalogio.LoadMask(cmd.GoalFile)
	if err != nil {
		return fmt.Errorf("failed to load goal mask: %w", err)
	}

	actions, err := catalog.Validate()
	if err != nil {
		return fmt.Errorf("catalog failed validation: %w", err)
	}

	est, err := estimation.EstimateSearch(start, goalMask, actions)
	if err != nil {
		return fmt.Errorf("failed to estimate search: %w", err)
	}

	fmt.Println(estimation.FormatEstimate(est))
	return nil
}
