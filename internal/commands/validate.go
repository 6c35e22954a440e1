package commands

import (
	"fmt"

	"github.com/goapcore/goap/internal/validation"
)

// ValidateCommand validates an action catalog document without running
// a search.
type ValidateCommand struct {
	CatalogFile string `arg:"" name:"catalog" help:"Action catalog YAML file" type:"path"`
	Strict      bool   `name:"strict" help:"Restrict effect values to booleans"`
}

// Run executes the validate command.
func (cmd *ValidateCommand) Run() error {
	fmt.Printf("validating catalog: %s\n\n", cmd.CatalogFile)

	result := validation.ValidateCatalogFile(cmd.CatalogFile, cmd.Strict)
	validation.PrintValidationResult(result)

	if !result.IsValid() {
		return fmt.Errorf("validation failed")
	}
	return nil
}
